package utils

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"ecommerce-backend/models"
)

const MaxImageSize = 5 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func ValidateImage(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return models.ValidationError("image file is required")
	}
	if fileHeader.Size > MaxImageSize {
		return models.ValidationError("file too large (max 5MB)")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return models.ValidationError("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
	}
	return nil
}

// ImageBaseName strips the extension and spaces from an uploaded file name.
func ImageBaseName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.ReplaceAll(base, " ", "_")
}
