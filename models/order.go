package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

var orderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func ParseOrderStatus(s string) (OrderStatus, error) {
	candidate := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, status := range orderStatuses {
		if candidate == status {
			return status, nil
		}
	}
	return "", ValidationError("invalid order status: %q", s)
}

// Cancellable reports whether cancelOrder may move an order out of s.
func (s OrderStatus) Cancellable() bool {
	return s != OrderDelivered && s != OrderCancelled
}

type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

func (i *OrderItem) CalculateSubtotal() {
	i.Subtotal = i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (o *Order) CalculateTotal() {
	total := decimal.Zero
	for i := range o.Items {
		o.Items[i].CalculateSubtotal()
		total = total.Add(o.Items[i].Subtotal)
	}
	o.TotalAmount = total
}

// NewOrderFromCart snapshots every cart line into a PENDING order.
// The returned order shares no slices with the cart.
func NewOrderFromCart(cart *Cart, shippingAddress, notes string) *Order {
	order := &Order{
		UserID:          cart.UserID,
		Status:          OrderPending,
		ShippingAddress: shippingAddress,
		Notes:           notes,
		Items:           make([]OrderItem, 0, len(cart.Items)),
	}
	for _, ci := range cart.Items {
		order.Items = append(order.Items, OrderItem{
			ProductID:   ci.ProductID,
			ProductName: ci.ProductName,
			Price:       ci.Price,
			Quantity:    ci.Quantity,
		})
	}
	order.CalculateTotal()
	return order
}
