package repositories

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-backend/models"

	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `o.id, o.user_id, o.total_amount, o.status, o.shipping_address, o.notes, o.created_at, o.updated_at`

func scanOrder(row pgx.Row, o *models.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status,
		&o.ShippingAddress, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
}

// Create inserts the order and its items and fills in the generated ids.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (user_id, total_amount, status, shipping_address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		order.UserID, order.TotalAmount, order.Status, order.ShippingAddress, order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order for user %d: %w", order.UserID, err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := r.db.QueryRow(ctx, itemQuery,
			item.OrderID, item.ProductID, item.ProductName, item.Price, item.Quantity, item.Subtotal,
		).Scan(&item.ID); err != nil {
			return fmt.Errorf("insert item for order %d: %w", order.ID, err)
		}
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id), order)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewError(models.ErrOrderNotFound, "order %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find order %d: %w", id, err)
	}

	orders := []models.Order{*order}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID int64, page models.PageRequest) ([]models.Order, int64, error) {
	return r.findPage(ctx, "WHERE o.user_id = $1", []any{userID}, page)
}

func (r *OrderRepository) FindAll(ctx context.Context, page models.PageRequest) ([]models.Order, int64, error) {
	return r.findPage(ctx, "", nil, page)
}

func (r *OrderRepository) findPage(ctx context.Context, where string, args []any, page models.PageRequest) ([]models.Order, int64, error) {
	orderBy, err := orderSortColumns.orderBy(page, "createdAt", models.SortDesc)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders o `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM orders o %s %s LIMIT $%d OFFSET $%d`,
		orderColumns, where, orderBy, n+1, n+2)
	rows, err := r.db.Query(ctx, query, append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	rows.Close()

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// loadItems fills Items for every order with a single query.
func (r *OrderRepository) loadItems(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []models.OrderItem{}
	}

	query := `
		SELECT id, order_id, product_id, product_name, price, quantity, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Price, &item.Quantity, &item.Subtotal); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("update order %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewError(models.ErrOrderNotFound, "order %d not found", id)
	}
	return nil
}

func (r *OrderRepository) CancelIfCancellable(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW()
		 WHERE id = $2 AND status NOT IN ($3, $4)`,
		models.OrderCancelled, id, models.OrderDelivered, models.OrderCancelled,
	)
	if err != nil {
		return false, fmt.Errorf("cancel order %d: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

var _ OrderStore = (*OrderRepository)(nil)
