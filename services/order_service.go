package services

import (
	"context"
	"strings"

	"ecommerce-backend/models"
	"ecommerce-backend/repositories"

	"github.com/rs/zerolog"
)

type OrderService struct {
	store repositories.Store
}

func NewOrderService(store repositories.Store) *OrderService {
	return &OrderService{store: store}
}

// CreateOrder turns the user's cart into a PENDING order and empties the
// cart. Both happen in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, shippingAddress, notes string) (models.OrderResponse, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return models.OrderResponse{}, models.ValidationError("shipping address is required")
	}

	var order *models.Order
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		cart, err := tx.Carts().FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return models.NewError(models.ErrEmptyCart, "cannot create order from empty cart")
		}

		order = models.NewOrderFromCart(cart, shippingAddress, notes)
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}
		if err := tx.Carts().ClearItems(ctx, cart.ID); err != nil {
			return err
		}
		return tx.Carts().Touch(ctx, cart.ID)
	})
	if err != nil {
		return models.OrderResponse{}, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("order_id", order.ID).
		Int64("user_id", userID).
		Str("total_amount", order.TotalAmount.StringFixed(2)).
		Int("items", len(order.Items)).
		Msg("order created")

	return models.ToOrderResponse(*order), nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID int64) (models.OrderResponse, error) {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return models.OrderResponse{}, err
	}
	return models.ToOrderResponse(*order), nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.OrderResponse], error) {
	page = page.Normalize()
	orders, total, err := s.store.Orders().FindByUserID(ctx, userID, page)
	if err != nil {
		return models.Page[models.OrderResponse]{}, err
	}
	return toOrderPage(orders, total, page), nil
}

func (s *OrderService) GetAllOrders(ctx context.Context, page models.PageRequest) (models.Page[models.OrderResponse], error) {
	page = page.Normalize()
	orders, total, err := s.store.Orders().FindAll(ctx, page)
	if err != nil {
		return models.Page[models.OrderResponse]{}, err
	}
	return toOrderPage(orders, total, page), nil
}

func toOrderPage(orders []models.Order, total int64, page models.PageRequest) models.Page[models.OrderResponse] {
	p := models.Page[models.Order]{Items: orders, Page: page.Page, Size: page.Size, TotalItems: total}
	return models.MapPage(p, models.ToOrderResponse)
}

// UpdateOrderStatus overwrites the status with any valid value.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (models.OrderResponse, error) {
	newStatus, err := models.ParseOrderStatus(status)
	if err != nil {
		return models.OrderResponse{}, err
	}

	if err := s.store.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
		return models.OrderResponse{}, err
	}

	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return models.OrderResponse{}, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("order_id", orderID).
		Str("status", string(newStatus)).
		Msg("order status updated")

	return models.ToOrderResponse(*order), nil
}

// CancelOrder cancels any order that is not DELIVERED or already CANCELLED.
// The guard is evaluated by the store against the current status, so a
// concurrent move to another non-terminal status does not block the cancel
// and concurrent cancels cannot both succeed.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int64) (models.OrderResponse, error) {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return models.OrderResponse{}, err
	}
	if !order.Status.Cancellable() {
		return models.OrderResponse{}, models.NewError(models.ErrInvalidTransition,
			"cannot cancel order in %s status", order.Status)
	}

	ok, err := s.store.Orders().CancelIfCancellable(ctx, orderID)
	if err != nil {
		return models.OrderResponse{}, err
	}

	current, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return models.OrderResponse{}, err
	}
	if !ok {
		return models.OrderResponse{}, models.NewError(models.ErrInvalidTransition,
			"cannot cancel order in %s status", current.Status)
	}

	zerolog.Ctx(ctx).Info().
		Int64("order_id", orderID).
		Str("from", string(order.Status)).
		Msg("order cancelled")

	return models.ToOrderResponse(*current), nil
}
