package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"venuehub/internal/utils"
	"venuehub/pkg/logger"
	"venuehub/pkg/storage"
)

const (
	imageQuality = 85

	// uploadTimeout bounds a single object write so one stuck upload cannot
	// stall the whole batch forever.
	uploadTimeout = 30 * time.Second
)

// ImageService moves listing photos in and out of object storage. A batch
// upload tolerates individual failures: bad entries are dropped and logged,
// the rest keep their submission order.
type ImageService interface {
	UploadImages(ctx context.Context, files []*multipart.FileHeader, folder string) []string
	DeleteImages(ctx context.Context, urls []string)
}

type imageService struct {
	provider storage.StorageProvider
	logger   *logger.Logger
}

func NewImageService(provider storage.StorageProvider, logger *logger.Logger) ImageService {
	return &imageService{
		provider: provider,
		logger:   logger,
	}
}

func (s *imageService) UploadImages(ctx context.Context, files []*multipart.FileHeader, folder string) []string {
	if len(files) == 0 {
		return nil
	}

	results := make([]string, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(idx int, header *multipart.FileHeader) {
			defer wg.Done()

			uploadedURL, err := s.uploadOne(ctx, header, folder)
			if err != nil {
				s.logger.WithError(err).
					WithField("filename", header.Filename).
					Warn("Image upload failed, dropping entry")
				return
			}
			results[idx] = uploadedURL
		}(i, file)
	}
	wg.Wait()

	urls := make([]string, 0, len(files))
	for _, uploadedURL := range results {
		if uploadedURL != "" {
			urls = append(urls, uploadedURL)
		}
	}
	return urls
}

func (s *imageService) uploadOne(ctx context.Context, header *multipart.FileHeader, folder string) (string, error) {
	if !utils.IsValidImageFormat(header.Filename) {
		return "", fmt.Errorf("unsupported image format: %s", header.Filename)
	}
	if header.Size > utils.MaxImageSize {
		return "", fmt.Errorf("image exceeds size limit: %d bytes", header.Size)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	var raw bytes.Buffer
	if _, err := raw.ReadFrom(file); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	data, format, err := utils.NormalizeImage(raw.Bytes(), header.Filename, utils.ImageMaxWidth, utils.ImageMaxHeight, imageQuality)
	if err != nil {
		return "", fmt.Errorf("failed to normalize image: %w", err)
	}

	key := fmt.Sprintf("%s/%s.%s", folder, utils.GenerateUUID(), extensionFor(format))

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	resp, err := s.provider.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      bytes.NewReader(data),
		ContentType: utils.ImageContentType(key),
		Size:        int64(len(data)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return resp.URL, nil
}

// DeleteImages is best effort: a listing delete must not fail because an
// object was already gone.
func (s *imageService) DeleteImages(ctx context.Context, urls []string) {
	for _, imageURL := range urls {
		key := keyFromURL(imageURL)
		if key == "" {
			continue
		}

		if err := s.provider.Delete(ctx, key); err != nil {
			s.logger.WithError(err).
				WithField("image_url", imageURL).
				Warn("Failed to delete image")
		}
	}
}

// keyFromURL recovers the storage key from a public URL. Keys are always
// written as folder/filename, so the last two path segments are the key.
func keyFromURL(imageURL string) string {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	return path.Join(segments[len(segments)-2], segments[len(segments)-1])
}

func extensionFor(format string) string {
	if format == "png" {
		return "png"
	}
	return "jpg"
}
