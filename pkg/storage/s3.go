package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// Uploaded photos never change, their keys are unique.
const immutableCacheControl = "public, max-age=31536000, immutable"

type s3Storage struct {
	uploader       *s3manager.Uploader
	publicEndpoint string
}

// NewS3Storage uploads to any S3 compatible endpoint, such as MinIO, with
// path style addressing.
func NewS3Storage(cfg S3Configs) (Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	})
	if err != nil {
		return nil, err
	}

	return &s3Storage{
		uploader:       s3manager.NewUploader(sess),
		publicEndpoint: cfg.PublicEndpoint,
	}, nil
}

func (s *s3Storage) input(object *UploadObject) (*s3manager.UploadInput, *UploadResponse) {
	resp := generateUploadURL(s.publicEndpoint, object)
	return &s3manager.UploadInput{
		Bucket:       aws.String(object.Bucket),
		Key:          aws.String(resp.FileName),
		Body:         bytes.NewReader(object.Data),
		ACL:          aws.String("public-read"),
		ContentType:  aws.String(object.Mime),
		CacheControl: aws.String(immutableCacheControl),
	}, resp
}

func (s *s3Storage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	input, resp := s.input(object)
	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return nil, fmt.Errorf("cannot upload %s to bucket %s: %w", resp.FileName, object.Bucket, err)
	}
	return resp, nil
}

// BulkUpload sends every object in one batch. Nothing is returned unless all
// of them were stored.
func (s *s3Storage) BulkUpload(ctx context.Context, objects []*UploadObject) ([]*UploadResponse, error) {
	batch := make([]s3manager.BatchUploadObject, 0, len(objects))
	out := make([]*UploadResponse, 0, len(objects))
	for _, o := range objects {
		input, resp := s.input(o)
		batch = append(batch, s3manager.BatchUploadObject{Object: input})
		out = append(out, resp)
	}

	iterator := &s3manager.UploadObjectsIterator{Objects: batch}
	if err := s.uploader.UploadWithIterator(ctx, iterator); err != nil {
		return nil, fmt.Errorf("cannot upload %d objects: %w", len(objects), err)
	}
	return out, nil
}

// generateUploadURL gives every object a unique key under its prefix and the
// public url it is served from.
func generateUploadURL(publicEndpoint string, object *UploadObject) *UploadResponse {
	key := uuid.NewString() + "-" + object.FileName
	if object.Prefix != "" {
		key = object.Prefix + "/" + key
	}

	return &UploadResponse{
		Url:      fmt.Sprintf("%s/%s/%s", publicEndpoint, object.Bucket, key),
		FileName: key,
	}
}
