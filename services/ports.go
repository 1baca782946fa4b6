package services

import (
	"context"
	"io"

	"ecommerce-backend/models"
)

// ProductCatalog resolves a product's current name and price.
type ProductCatalog interface {
	LookupProduct(ctx context.Context, productID int64) (*models.ProductSnapshot, error)
}

type ImageStorage interface {
	UploadImage(ctx context.Context, file io.Reader, name string) (url, publicID string, err error)
	DeleteImage(ctx context.Context, publicID string) error
}

type TokenIssuer interface {
	GenerateToken(user *models.User) (string, error)
}

type WelcomeMailer interface {
	SendWelcomeEmail(user *models.User) error
}
