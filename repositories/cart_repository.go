package repositories

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-backend/models"

	"github.com/jackc/pgx/v5"
)

type CartRepository struct {
	db DBTX
}

func NewCartRepository(db DBTX) *CartRepository {
	return &CartRepository{db: db}
}

const cartColumns = `id, user_id, created_at, updated_at`

func (r *CartRepository) FindByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	return r.findByUserID(ctx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1`, userID)
}

func (r *CartRepository) FindByUserIDForUpdate(ctx context.Context, userID int64) (*models.Cart, error) {
	return r.findByUserID(ctx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1 FOR UPDATE`, userID)
}

func (r *CartRepository) findByUserID(ctx context.Context, query string, userID int64) (*models.Cart, error) {
	cart := &models.Cart{}
	err := r.db.QueryRow(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewError(models.ErrCartNotFound, "cart not found for user %d", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("find cart for user %d: %w", userID, err)
	}

	if err := r.loadItems(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *CartRepository) GetOrCreate(ctx context.Context, userID int64) (*models.Cart, error) {
	// The no-op update makes the conflicting row part of the result and locks it.
	query := `
		INSERT INTO carts (user_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = carts.updated_at
		RETURNING ` + cartColumns

	cart := &models.Cart{}
	err := r.db.QueryRow(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get or create cart for user %d: %w", userID, err)
	}

	if err := r.loadItems(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *CartRepository) loadItems(ctx context.Context, cart *models.Cart) error {
	query := `
		SELECT id, cart_id, product_id, product_name, price, quantity, created_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, cart.ID)
	if err != nil {
		return fmt.Errorf("load items for cart %d: %w", cart.ID, err)
	}
	defer rows.Close()

	cart.Items = []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName,
			&item.Price, &item.Quantity, &item.CreatedAt); err != nil {
			return fmt.Errorf("scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}
	return rows.Err()
}

func (r *CartRepository) InsertItem(ctx context.Context, item *models.CartItem) error {
	query := `
		INSERT INTO cart_items (cart_id, product_id, product_name, price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		item.CartID, item.ProductID, item.ProductName, item.Price, item.Quantity,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert item into cart %d: %w", item.CartID, err)
	}
	return nil
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2 AND cart_id = $3`,
		quantity, itemID, cartID,
	)
	if err != nil {
		return fmt.Errorf("update cart item %d: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewError(models.ErrItemNotFound, "item %d not found in cart", itemID)
	}
	return nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, cartID, itemID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		return fmt.Errorf("delete cart item %d: %w", itemID, err)
	}
	return nil
}

func (r *CartRepository) ClearItems(ctx context.Context, cartID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("clear cart %d: %w", cartID, err)
	}
	return nil
}

func (r *CartRepository) Touch(ctx context.Context, cartID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("touch cart %d: %w", cartID, err)
	}
	return nil
}

var _ CartStore = (*CartRepository)(nil)
