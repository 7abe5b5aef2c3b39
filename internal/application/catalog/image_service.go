package catalog

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/turkmasale/backend/internal/domain/shared"
)

// DefaultMaxUploadSize caps product image uploads at 5 MiB
const DefaultMaxUploadSize int64 = 5 << 20

// allowedImageTypes maps accepted content types to the object key
// extension used when the filename carries none.
var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// UploadResponse carries the stored object's public URL
type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ImageService validates and stores product images. Content type and
// size are checked before any bytes leave for the object store.
type ImageService struct {
	storage ImageStorage
	maxSize int64
}

// NewImageService creates a new ImageService. A non-positive maxSize
// falls back to DefaultMaxUploadSize.
func NewImageService(storage ImageStorage, maxSize int64) *ImageService {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &ImageService{storage: storage, maxSize: maxSize}
}

// Upload stores an image and returns its public URL
func (s *ImageService) Upload(ctx context.Context, filename, contentType string, reader io.Reader) (*UploadResponse, error) {
	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, shared.NewDomainError("INVALID_IMAGE_TYPE", "Only PNG, JPEG and WebP images are accepted")
	}

	// Read one byte past the limit to distinguish at-limit from over
	data, err := io.ReadAll(io.LimitReader(reader, s.maxSize+1))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Could not read uploaded image")
	}
	if int64(len(data)) > s.maxSize {
		return nil, shared.NewDomainError("IMAGE_TOO_LARGE",
			fmt.Sprintf("Image exceeds the %d MiB upload limit", s.maxSize>>20))
	}
	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Uploaded image is empty")
	}

	key := objectKey(filename, ext)
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, shared.NewDomainError("UPSTREAM_UNAVAILABLE", "Image storage is unavailable")
	}

	return &UploadResponse{Key: key, URL: url}, nil
}

// objectKey builds a collision-free object name, preferring the
// original file extension when it is present.
func objectKey(filename, fallbackExt string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = fallbackExt
	}
	return "products/" + uuid.New().String() + ext
}
