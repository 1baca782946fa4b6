package repositories

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type CartStore interface {
	FindByUserID(ctx context.Context, userID int64) (*models.Cart, error)
	// FindByUserIDForUpdate locks the cart row until the surrounding transaction ends.
	FindByUserIDForUpdate(ctx context.Context, userID int64) (*models.Cart, error)
	// GetOrCreate returns the user's cart, creating it if needed, and locks its row.
	GetOrCreate(ctx context.Context, userID int64) (*models.Cart, error)
	InsertItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID int64) error
	ClearItems(ctx context.Context, cartID int64) error
	Touch(ctx context.Context, cartID int64) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	FindByUserID(ctx context.Context, userID int64, page models.PageRequest) ([]models.Order, int64, error)
	FindAll(ctx context.Context, page models.PageRequest) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
	// CancelIfCancellable sets CANCELLED unless the order is DELIVERED or
	// already CANCELLED, and reports whether a row changed.
	CancelIfCancellable(ctx context.Context, id int64) (bool, error)
}

// Store is the order-service unit of work.
type Store interface {
	Carts() CartStore
	Orders() OrderStore
	// WithinTx runs fn against a transactional Store. fn's error rolls back.
	WithinTx(ctx context.Context, fn func(Store) error) error
}

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindActive(ctx context.Context, page models.PageRequest) ([]models.Product, int64, error)
	Search(ctx context.Context, filter models.ProductFilter, page models.PageRequest) ([]models.Product, int64, error)
	FindByCategory(ctx context.Context, categoryID int64, page models.PageRequest) ([]models.Product, int64, error)
	// AdjustStock adds delta to the stock and returns the updated product.
	AdjustStock(ctx context.Context, id int64, delta int) (*models.Product, error)
	UpdateImage(ctx context.Context, id int64, url, publicID string) error
	Delete(ctx context.Context, id int64) error
}

type CategoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	FindActive(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// PgStore implements Store on a pgx pool, or on a transaction inside WithinTx.
type PgStore struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool, db: pool}
}

func (s *PgStore) Carts() CartStore {
	return NewCartRepository(s.db)
}

func (s *PgStore) Orders() OrderStore {
	return NewOrderRepository(s.db)
}

func (s *PgStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	if _, inTx := s.db.(pgx.Tx); inTx {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&PgStore{pool: s.pool, db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

var _ Store = (*PgStore)(nil)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	return hasPgCode(err, uniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, foreignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
