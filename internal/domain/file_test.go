package domain

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/storage"
	"github.com/vriksha-lab/backend/pkg/testutil"
)

func newImageHeader(t *testing.T) *multipart.FileHeader {
	img := new(bytes.Buffer)
	require.NoError(t, png.Encode(img, image.NewRGBA(image.Rect(0, 0, 64, 64))))

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "neem.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/uploadImage", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func Test_fileDomain_UploadImage(t *testing.T) {
	fileStorage := storage.NewMemoryStorage("http://localhost/files")
	d := NewFileDomain(fileStorage)

	resp, err := d.UploadImage(testutil.MockContextWithUserID("user-1"), &model.UploadImageRequest{
		Image: newImageHeader(t),
	})
	require.NoError(t, err)
	require.Contains(t, resp.URL, "http://localhost/files/images/user-1/")
	require.Contains(t, resp.Thumbnail, "256x256-neem.png")
	require.Equal(t, 2, fileStorage.Len())

	_, err = d.UploadImage(testutil.MockContextWithUserID("user-1"), &model.UploadImageRequest{})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}
