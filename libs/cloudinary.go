package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"ecommerce-backend/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryService prefers CLOUDINARY_URL and falls back to separate credentials.
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	c := cfg.Cloudinary

	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case c.URL != "":
		cld, err = cloudinary.NewFromURL(c.URL)
	case c.CloudName != "" && c.APIKey != "" && c.APISecret != "":
		cld, err = cloudinary.NewFromParams(c.CloudName, c.APIKey, c.APISecret)
	default:
		return nil, errors.New("cloudinary credentials not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld, folder: c.Folder}, nil
}

// UploadImage returns the secure URL and public id of the stored image.
func (s *CloudinaryService) UploadImage(ctx context.Context, file io.Reader, name string) (string, string, error) {
	publicID := fmt.Sprintf("%d_%s", time.Now().Unix(), name)

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         s.folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", "", fmt.Errorf("cloudinary upload rejected: %s", result.Error.Message)
	}

	url := result.SecureURL
	if url == "" {
		url = result.URL
	}
	return url, result.PublicID, nil
}

func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary deletion failed: %s", result.Result)
	}
	return nil
}
