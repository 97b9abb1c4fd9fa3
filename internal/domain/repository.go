package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SignalStore defines the interface for the append-only signal store.
// The gateway process exclusively owns the backing file; appends are
// serialized and a reader never observes a partially written record.
type SignalStore interface {
	// Append persists a new record before returning
	Append(ctx context.Context, record *SignalRecord) error

	// Recent retrieves up to limit records, oldest first, from the tail
	Recent(ctx context.Context, limit int) ([]*SignalRecord, error)

	// Count returns the total number of records ever stored
	Count(ctx context.Context) (int, error)
}

// ServiceUser is an identity row in the external persistence service
type ServiceUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleService marks identity rows registered by gateway processes
const RoleService = "SERVICE"

// CommandEntry is one append-only audit row in the external command log
type CommandEntry struct {
	ID        uuid.UUID       `json:"id"`
	Source    string          `json:"source"`
	Command   string          `json:"command"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserStore defines the upsert-by-identifier contract of the external
// user persistence service. Implementations are capability-checked: an
// unavailable variant accepts every call as a no-op so call sites never
// branch on a nil handle.
type UserStore interface {
	// Upsert creates or refreshes a user row keyed by name
	Upsert(ctx context.Context, user *ServiceUser) error
}

// CommandLog defines the append-only insert contract of the external
// command log. Same capability-checked discipline as UserStore.
type CommandLog interface {
	// Insert appends one command entry
	Insert(ctx context.Context, entry *CommandEntry) error
}
