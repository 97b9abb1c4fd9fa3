package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"signalgate/internal/domain"
)

// UserRepositoryImpl implements the UserStore interface on Postgres
type UserRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserStore backed by Postgres
func NewUserRepository(db *pgxpool.Pool) domain.UserStore {
	return &UserRepositoryImpl{db: db}
}

// Upsert creates or refreshes a user row keyed by name
func (r *UserRepositoryImpl) Upsert(ctx context.Context, user *domain.ServiceUser) error {
	query := `
		INSERT INTO users (
			id, name, role, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
		ON CONFLICT (name) DO UPDATE
		SET role = EXCLUDED.role, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}
