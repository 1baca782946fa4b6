package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecommerce-backend/models"

	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.stock, p.image_url, p.image_public_id,
	       p.category_id, c.name, p.active, p.created_at, p.updated_at
	FROM products p
	JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.ImagePublicID,
		&p.CategoryID, &p.CategoryName, &p.Active, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, stock, image_url, category_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.CategoryID, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, image_url = $5,
		    category_id = $6, active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.CategoryID, p.Active, p.ID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewError(models.ErrProductNotFound, "product %d not found", p.ID)
	}
	if err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	p := &models.Product{}
	err := scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id), p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewError(models.ErrProductNotFound, "product %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return p, nil
}

func (r *ProductRepository) FindActive(ctx context.Context, page models.PageRequest) ([]models.Product, int64, error) {
	return r.findPage(ctx, []string{"p.active = true"}, nil, page)
}

func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID int64, page models.PageRequest) ([]models.Product, int64, error) {
	return r.findPage(ctx, []string{"p.active = true", "p.category_id = $1"}, []any{categoryID}, page)
}

// Search matches name as a case-insensitive substring. Nil filter fields are skipped.
func (r *ProductRepository) Search(ctx context.Context, filter models.ProductFilter, page models.PageRequest) ([]models.Product, int64, error) {
	conds := []string{"p.active = true"}
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Name != nil && strings.TrimSpace(*filter.Name) != "" {
		add("p.name ILIKE $%d", "%"+escapeLike(strings.TrimSpace(*filter.Name))+"%")
	}
	if filter.CategoryID != nil {
		add("p.category_id = $%d", *filter.CategoryID)
	}
	if filter.MinPrice != nil {
		add("p.price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("p.price <= $%d", *filter.MaxPrice)
	}
	return r.findPage(ctx, conds, args, page)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *ProductRepository) findPage(ctx context.Context, conds []string, args []any, page models.PageRequest) ([]models.Product, int64, error) {
	orderBy, err := productSortColumns.orderBy(page, "id", models.SortAsc)
	if err != nil {
		return nil, 0, err
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`%s%s %s LIMIT $%d OFFSET $%d`, productSelect, where, orderBy, n+1, n+2)
	rows, err := r.db.Query(ctx, query, append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// AdjustStock applies delta only if the result stays non-negative.
func (r *ProductRepository) AdjustStock(ctx context.Context, id int64, delta int) (*models.Product, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock + $1, updated_at = NOW() WHERE id = $2 AND stock + $1 >= 0`,
		delta, id,
	)
	if err != nil {
		return nil, fmt.Errorf("adjust stock of product %d: %w", id, err)
	}

	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.NewError(models.ErrInsufficientStock,
			"insufficient stock for product %d: have %d, change %d", id, p.Stock, delta)
	}
	return p, nil
}

func (r *ProductRepository) UpdateImage(ctx context.Context, id int64, url, publicID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET image_url = $1, image_public_id = $2, updated_at = NOW() WHERE id = $3`,
		url, publicID, id,
	)
	if err != nil {
		return fmt.Errorf("update image of product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewError(models.ErrProductNotFound, "product %d not found", id)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewError(models.ErrProductNotFound, "product %d not found", id)
	}
	return nil
}

var _ ProductStore = (*ProductRepository)(nil)
