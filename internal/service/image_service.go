package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageService uploads product and supplier images to the external image
// host and returns the hosted URL.
type ImageService interface {
	UploadImage(ctx context.Context, file multipart.File, folder string) (string, error)
}

type cloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService creates an ImageService backed by Cloudinary
func NewCloudinaryService(cloudName, apiKey, apiSecret string) (ImageService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &cloudinaryService{cld: cld}, nil
}

// UploadImage uploads a single image and returns the secure URL
func (s *cloudinaryService) UploadImage(ctx context.Context, file multipart.File, folder string) (string, error) {
	unique := true
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		UniqueFilename: &unique,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if result.SecureURL == "" {
		return "", fmt.Errorf("upload succeeded but no URL returned")
	}

	return result.SecureURL, nil
}
