package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"

	"github.com/nfnt/resize"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/storage"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

const ImageBucket = "images"

type photoSize struct {
	width, height uint
}

func (s photoSize) String() string {
	return fmt.Sprintf("%dx%d", s.width, s.height)
}

// PhotoSizes are bounding boxes, the aspect ratio is kept. The first size is
// the one shown in the feed and analyzed by the AI.
var PhotoSizes = []photoSize{
	{width: 1024, height: 1024},
	{width: 256, height: 256},
}

type ProcessedImage struct {
	URL       string
	Thumbnail string
}

// ProcessImage decodes an uploaded photo, scales it to every photo size and
// uploads the results under prefix.
func ProcessImage(
	ctx context.Context,
	fileStorage storage.Storage,
	header *multipart.FileHeader,
	prefix string,
) (*ProcessedImage, error) {
	if header == nil {
		return nil, errorx.New(errorx.BadRequest, "Require an image")
	}

	if maxSize := xcontext.Configs(ctx).File.MaxSize; maxSize > 0 && header.Size > maxSize {
		return nil, errorx.New(errorx.BadRequest, "Image must be smaller than %d bytes", maxSize)
	}

	file, err := header.Open()
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot open uploaded image: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Cannot read the image")
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	img, err := decodeImg(mime, file)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode image: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid image")
	}

	objects := make([]*storage.UploadObject, 0, len(PhotoSizes))
	for _, size := range PhotoSizes {
		scaled := resize.Thumbnail(size.width, size.height, img, resize.Lanczos2)
		data, err := encodeImg(mime, scaled)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot encode image: %v", err)
			return nil, errorx.Unknown
		}

		objects = append(objects, &storage.UploadObject{
			Bucket:   ImageBucket,
			Prefix:   prefix,
			FileName: fmt.Sprintf("%s-%s", size, header.Filename),
			Mime:     mime,
			Data:     data,
		})
	}

	uploaded, err := fileStorage.BulkUpload(ctx, objects)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload image: %v", err)
		return nil, errorx.Unknown
	}

	return &ProcessedImage{URL: uploaded[0].Url, Thumbnail: uploaded[len(uploaded)-1].Url}, nil
}

type imageCodec struct {
	decode func(io.Reader) (image.Image, error)
	encode func(io.Writer, image.Image) error
}

var pngCodec = imageCodec{decode: png.Decode, encode: png.Encode}

// imageCodecs is keyed by the upload mime type. Untyped uploads from mobile
// clients are treated as png.
var imageCodecs = map[string]imageCodec{
	"image/png":                pngCodec,
	"application/octet-stream": pngCodec,
	"image/jpeg": {
		decode: jpeg.Decode,
		encode: func(w io.Writer, img image.Image) error { return jpeg.Encode(w, img, nil) },
	},
	"image/gif": {
		decode: gif.Decode,
		encode: func(w io.Writer, img image.Image) error { return gif.Encode(w, img, nil) },
	},
}

func codecOf(mime string) (imageCodec, error) {
	codec, ok := imageCodecs[mime]
	if !ok {
		return imageCodec{}, fmt.Errorf("unsupported image type %q, use jpeg, gif or png", mime)
	}
	return codec, nil
}

func decodeImg(mime string, data io.Reader) (image.Image, error) {
	codec, err := codecOf(mime)
	if err != nil {
		return nil, err
	}
	return codec.decode(data)
}

func encodeImg(mime string, img image.Image) ([]byte, error) {
	codec, err := codecOf(mime)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := codec.encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
