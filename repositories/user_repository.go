package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecommerce-backend/models"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password, first_name, last_name, phone, role, active, created_at, updated_at`

func scanUser(row pgx.Row, u *models.User) error {
	return row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Phone, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, first_name, last_name, phone, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		strings.ToLower(user.Email), user.Password, user.FirstName, user.LastName, user.Phone, user.Role, user.Active,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return models.NewError(models.ErrEmailExists, "email %s is already registered", user.Email)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)), user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewError(models.ErrUserNotFound, "user %s not found", email)
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewError(models.ErrUserNotFound, "user %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return user, nil
}

var _ UserStore = (*UserRepository)(nil)
