package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"signalgate/internal/domain"
)

// CommandLogRepositoryImpl implements the CommandLog interface on Postgres.
// The table is append-only: rows are never updated or deleted here.
type CommandLogRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewCommandLogRepository creates a new CommandLog backed by Postgres
func NewCommandLogRepository(db *pgxpool.Pool) domain.CommandLog {
	return &CommandLogRepositoryImpl{db: db}
}

// Insert appends one command entry
func (r *CommandLogRepositoryImpl) Insert(ctx context.Context, entry *domain.CommandEntry) error {
	query := `
		INSERT INTO command_log (
			id, source, command, payload, created_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.Source,
		entry.Command,
		entry.Payload,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert command entry: %w", err)
	}

	return nil
}
