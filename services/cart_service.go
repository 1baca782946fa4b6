package services

import (
	"context"
	"errors"

	"ecommerce-backend/models"
	"ecommerce-backend/repositories"

	"github.com/rs/zerolog"
)

type CartService struct {
	store   repositories.Store
	catalog ProductCatalog
}

func NewCartService(store repositories.Store, catalog ProductCatalog) *CartService {
	return &CartService{store: store, catalog: catalog}
}

// AddItem merges quantity into the line for productID, or appends a new line
// carrying the catalog's current name and price.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (models.CartResponse, error) {
	if quantity < 1 {
		return models.CartResponse{}, models.ValidationError("quantity must be at least 1")
	}
	if quantity > models.MaxItemQuantity {
		return models.CartResponse{}, models.ValidationError("quantity must be at most %d", models.MaxItemQuantity)
	}

	product, err := s.catalog.LookupProduct(ctx, productID)
	if err != nil {
		return models.CartResponse{}, err
	}

	var cart *models.Cart
	err = s.store.WithinTx(ctx, func(tx repositories.Store) error {
		current, err := tx.Carts().GetOrCreate(ctx, userID)
		if err != nil {
			return err
		}

		if existing := current.FindItemByProduct(productID); existing != nil {
			merged := existing.Quantity + quantity
			if merged > models.MaxItemQuantity {
				return models.ValidationError("cart already holds %d of product %d; at most %d allowed",
					existing.Quantity, productID, models.MaxItemQuantity)
			}
			err = tx.Carts().UpdateItemQuantity(ctx, current.ID, existing.ID, merged)
		} else {
			err = tx.Carts().InsertItem(ctx, &models.CartItem{
				CartID:      current.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.Price,
				Quantity:    quantity,
			})
		}
		if err != nil {
			return err
		}

		cart, err = s.touchAndReload(ctx, tx, current)
		return err
	})
	if err != nil {
		return models.CartResponse{}, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("user_id", userID).
		Int64("product_id", productID).
		Int("quantity", quantity).
		Msg("item added to cart")

	return models.ToCartResponse(cart), nil
}

// UpdateItemQuantity sets the line's quantity; zero or less removes the line.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) (models.CartResponse, error) {
	if quantity > models.MaxItemQuantity {
		return models.CartResponse{}, models.ValidationError("quantity must be at most %d", models.MaxItemQuantity)
	}

	var cart *models.Cart
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		current, err := tx.Carts().FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if current.FindItem(itemID) == nil {
			return models.NewError(models.ErrItemNotFound, "item %d not found in cart", itemID)
		}

		if quantity <= 0 {
			err = tx.Carts().DeleteItem(ctx, current.ID, itemID)
		} else {
			err = tx.Carts().UpdateItemQuantity(ctx, current.ID, itemID, quantity)
		}
		if err != nil {
			return err
		}

		cart, err = s.touchAndReload(ctx, tx, current)
		return err
	})
	if err != nil {
		return models.CartResponse{}, err
	}
	return models.ToCartResponse(cart), nil
}

// RemoveItem is a no-op for an item that is not in the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) (models.CartResponse, error) {
	var cart *models.Cart
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		current, err := tx.Carts().FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if current.FindItem(itemID) == nil {
			cart = current
			return nil
		}
		if err := tx.Carts().DeleteItem(ctx, current.ID, itemID); err != nil {
			return err
		}
		cart, err = s.touchAndReload(ctx, tx, current)
		return err
	})
	if err != nil {
		return models.CartResponse{}, err
	}
	return models.ToCartResponse(cart), nil
}

func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		current, err := tx.Carts().FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if err := tx.Carts().ClearItems(ctx, current.ID); err != nil {
			return err
		}
		return tx.Carts().Touch(ctx, current.ID)
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int64("user_id", userID).Msg("cart cleared")
	return nil
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *CartService) GetCart(ctx context.Context, userID int64) (models.CartResponse, error) {
	cart, err := s.store.Carts().FindByUserID(ctx, userID)
	if errors.Is(err, models.ErrCartNotFound) {
		cart, err = s.store.Carts().GetOrCreate(ctx, userID)
	}
	if err != nil {
		return models.CartResponse{}, err
	}
	return models.ToCartResponse(cart), nil
}

func (s *CartService) touchAndReload(ctx context.Context, tx repositories.Store, cart *models.Cart) (*models.Cart, error) {
	if err := tx.Carts().Touch(ctx, cart.ID); err != nil {
		return nil, err
	}
	return tx.Carts().FindByUserID(ctx, cart.UserID)
}
