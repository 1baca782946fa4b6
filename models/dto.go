package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Active      *bool  `json:"active"`
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description" binding:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" binding:"min=0"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url"`
	CategoryID  int64           `json:"category_id" binding:"required"`
	Active      *bool           `json:"active"`
}

type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"image_url"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1,max=10000"`
}

type CartItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"user_id"`
	Items       []CartItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalItems  int                `json:"total_items"`
}

type OrderRequest struct {
	UserID          int64  `json:"user_id" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
	Notes           string `json:"notes"`
}

type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"user_id"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          OrderStatus         `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	Notes           string              `json:"notes"`
	OrderItems      []OrderItemResponse `json:"order_items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
