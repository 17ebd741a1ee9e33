package model

import "mime/multipart"

type UploadImageRequest struct {
	Image *multipart.FileHeader `form:"image"`
}

type UploadImageResponse struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}
