package postgresql

import (
	"context"
	"fmt"

	"github.com/factorydesk/workforce-backend-go/internal/domain/auth"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) auth.UserRepository {
	return &userRepository{db: db}
}

// GetByUsername implements auth.UserRepository.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, factory_id, username, password_hash, role, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var u auth.User
	err := q.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.FactoryID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByID implements auth.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, factory_id, username, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u auth.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.FactoryID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}
