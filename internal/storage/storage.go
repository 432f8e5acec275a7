package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows PUT requests
	// for uploading an object directly to the storage provider.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// PublicURL is the permanent address an uploaded object is served from.
	PublicURL(objectKey string) string

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// Image folders, one per entity that carries an image_url.
const (
	FolderTrainers  = "trainers"
	FolderMealPlans = "meal-plans"
)

var (
	ErrUnsupportedFolder      = errors.New("unsupported image folder")
	ErrUnsupportedContentType = errors.New("unsupported image content type")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageUpload is what the admin form needs to upload an image and then
// store its address.
type ImageUpload struct {
	UploadURL   string    `json:"uploadUrl"`
	ImageURL    string    `json:"imageUrl"`
	ObjectKey   string    `json:"objectKey"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ImageUploader hands out presigned uploads for entity images. The server
// never handles the image bytes.
type ImageUploader struct {
	files   FileStorage
	expires time.Duration
	now     func() time.Time
}

func NewImageUploader(files FileStorage, expires time.Duration) *ImageUploader {
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}
	return &ImageUploader{files: files, expires: expires, now: time.Now}
}

// PresignImage creates an upload for a new image in folder.
func (u *ImageUploader) PresignImage(ctx context.Context, folder, contentType string) (*ImageUpload, error) {
	if folder != FolderTrainers && folder != FolderMealPlans {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFolder, folder)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}

	key := folder + "/" + uuid.NewString() + ext
	url, err := u.files.GeneratePresignedUploadURL(ctx, key, contentType, u.expires)
	if err != nil {
		return nil, err
	}
	return &ImageUpload{
		UploadURL:   url,
		ImageURL:    u.files.PublicURL(key),
		ObjectKey:   key,
		ContentType: contentType,
		ExpiresAt:   u.now().Add(u.expires).UTC(),
	}, nil
}

// Discard removes an uploaded image that was never saved on a record.
func (u *ImageUploader) Discard(ctx context.Context, objectKey string) error {
	folder, _, ok := strings.Cut(objectKey, "/")
	if !ok || (folder != FolderTrainers && folder != FolderMealPlans) || strings.Contains(objectKey, "..") {
		return fmt.Errorf("%w: %q", ErrUnsupportedFolder, objectKey)
	}
	return u.files.DeleteObject(ctx, objectKey)
}
