package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageStore uploads listing images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, image string) (string, error)
}

// CloudinaryStore implements ImageStore using Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore initializes a Cloudinary-backed image store.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload accepts a base64 data URI (or remote URL) and stores it under
// the listing images folder.
func (s *CloudinaryStore) Upload(ctx context.Context, image string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		Folder: "listing_images",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload listing image: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no image url")
	}
	return resp.SecureURL, nil
}
