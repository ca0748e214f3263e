package ports

import (
	"context"

	"github.com/taskdeck/task-system/internal/core/domain"
)

// SessionStore persists the single active-session pointer independently of
// the account table.
type SessionStore interface {
	// Put replaces the current session pointer.
	Put(ctx context.Context, session domain.Session) error
	// Get returns the persisted pointer, or (nil, nil) when none exists.
	// Absence is the normal signed-out state, not an error.
	Get(ctx context.Context) (*domain.Session, error)
	// Clear removes the pointer. Clearing an absent pointer is a no-op.
	Clear(ctx context.Context) error
}
