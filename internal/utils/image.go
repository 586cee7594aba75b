package utils

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
)

type ImageDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func GetImageDimensions(reader io.Reader) (*ImageDimensions, error) {
	config, _, err := image.DecodeConfig(reader)
	if err != nil {
		return nil, err
	}

	return &ImageDimensions{
		Width:  config.Width,
		Height: config.Height,
	}, nil
}

// NormalizeImage decodes, downscales to fit within maxWidth x maxHeight
// preserving aspect ratio, and re-encodes. Images already within bounds are
// re-encoded as-is.
func NormalizeImage(data []byte, filename string, maxWidth, maxHeight uint, quality int) ([]byte, string, error) {
	img, err := decodeImage(bytes.NewReader(data), filename)
	if err != nil {
		return nil, "", err
	}

	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	if width > maxWidth || height > maxHeight {
		widthRatio := float64(maxWidth) / float64(width)
		heightRatio := float64(maxHeight) / float64(height)

		var newWidth, newHeight uint
		if widthRatio < heightRatio {
			newWidth = maxWidth
			newHeight = uint(float64(height) * widthRatio)
		} else {
			newWidth = uint(float64(width) * heightRatio)
			newHeight = maxHeight
		}

		img = resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
	}

	format := imageFormat(filename)
	if format == "" {
		// Formats without an encoder here are re-encoded as JPEG.
		format = "jpeg"
	}
	var buf bytes.Buffer
	if err := EncodeImage(img, format, &buf, quality); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), format, nil
}

func decodeImage(reader io.Reader, filename string) (image.Image, error) {
	switch imageFormat(filename) {
	case "jpeg":
		return jpeg.Decode(reader)
	case "png":
		return png.Decode(reader)
	default:
		img, _, err := image.Decode(reader)
		return img, err
	}
}

func EncodeImage(img image.Image, format string, writer io.Writer, quality int) error {
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
	case "png":
		return png.Encode(writer, img)
	default:
		return errors.New("unsupported image format")
	}
}

func IsValidImageFormat(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, format := range []string{".jpg", ".jpeg", ".png", ".gif", ".webp"} {
		if ext == format {
			return true
		}
	}
	return false
}

func imageFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	default:
		return ""
	}
}

// ImageContentType maps the filename extension to the MIME type stored with
// the object.
func ImageContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
