package domain

import (
	"context"
	"time"
)

// BindingsRepository is the durable backend for account bindings. The
// in-memory store writes through to it on every mutation and replays
// GetAllBindings on startup.
type BindingsRepository interface {
	InsertBinding(ctx context.Context, binding *Binding) error
	DeleteBinding(ctx context.Context, userID int64) (bool, error)
	GetAllBindings(ctx context.Context) ([]*Binding, error)
}

// Binding maps a chat user to exactly one external game account.
type Binding struct {
	UserID    int64  `json:"user_id"`
	AccountID string `json:"account_id"`

	CreatedAt time.Time `json:"created_at"`
}
