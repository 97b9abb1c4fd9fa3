package repository

import (
	"context"

	"signalgate/internal/domain"
)

// Unavailable is the no-op variant of the persistence client, selected at
// startup when no DATABASE_URL is configured. Every call succeeds without
// doing anything, so call sites depend on the capability rather than on a
// nullable handle.
type Unavailable struct{}

// NewUnavailable creates the no-op persistence variant
func NewUnavailable() *Unavailable {
	return &Unavailable{}
}

// Upsert accepts and discards the user row
func (u *Unavailable) Upsert(ctx context.Context, user *domain.ServiceUser) error {
	return nil
}

// Insert accepts and discards the command entry
func (u *Unavailable) Insert(ctx context.Context, entry *domain.CommandEntry) error {
	return nil
}
