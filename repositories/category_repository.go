package repositories

import (
	"context"
	"errors"
	"fmt"

	"ecommerce-backend/models"

	"github.com/jackc/pgx/v5"
)

type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, name, description, active, created_at, updated_at`

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO categories (name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, c.Name, c.Description, c.Active).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if isUniqueViolation(err) {
		return models.NewError(models.ErrDuplicateCategory, "category %q already exists", c.Name)
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	query := `
		UPDATE categories SET name = $1, description = $2, active = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, c.Name, c.Description, c.Active, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NewError(models.ErrCategoryNotFound, "category %d not found", c.ID)
	}
	if isUniqueViolation(err) {
		return models.NewError(models.ErrDuplicateCategory, "category %q already exists", c.Name)
	}
	if err != nil {
		return fmt.Errorf("update category %d: %w", c.ID, err)
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	c := &models.Category{}
	err := r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewError(models.ErrCategoryNotFound, "category %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}
	return c, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	return r.list(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
}

func (r *CategoryRepository) FindActive(ctx context.Context) ([]models.Category, error) {
	return r.list(ctx, `SELECT `+categoryColumns+` FROM categories WHERE active = true ORDER BY name`)
}

func (r *CategoryRepository) list(ctx context.Context, query string) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return models.NewError(models.ErrBusinessRule, "category %d still has products", id)
	}
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.NewError(models.ErrCategoryNotFound, "category %d not found", id)
	}
	return nil
}

var _ CategoryStore = (*CategoryRepository)(nil)
