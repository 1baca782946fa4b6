package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	ImageURL      string          `json:"image_url"`
	ImagePublicID string          `json:"-"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductFilter narrows a product search. Nil fields are ignored.
type ProductFilter struct {
	Name       *string
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// ProductSnapshot is what the order service needs from the catalog.
type ProductSnapshot struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}
