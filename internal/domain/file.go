package domain

import (
	"context"

	"github.com/vriksha-lab/backend/internal/common"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/storage"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

type FileDomain interface {
	UploadImage(context.Context, *model.UploadImageRequest) (*model.UploadImageResponse, error)
}

type fileDomain struct {
	storage storage.Storage
}

func NewFileDomain(storage storage.Storage) *fileDomain {
	return &fileDomain{storage: storage}
}

func (d *fileDomain) UploadImage(
	ctx context.Context, req *model.UploadImageRequest,
) (*model.UploadImageResponse, error) {
	image, err := common.ProcessImage(ctx, d.storage, req.Image, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.UploadImageResponse{URL: image.URL, Thumbnail: image.Thumbnail}, nil
}
