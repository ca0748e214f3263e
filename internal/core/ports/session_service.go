package ports

import (
	"context"

	"github.com/taskdeck/task-system/internal/core/domain"
)

// SessionService resolves and maintains the active-session pointer.
type SessionService interface {
	// Restore resolves the persisted pointer to its account. Returns
	// (nil, nil) when no pointer exists or when the referenced account is
	// gone; a stale pointer is discarded, never re-created.
	Restore(ctx context.Context) (*domain.Account, error)
	// Activate persists account as the current session, replacing any prior one.
	Activate(ctx context.Context, account *domain.Account) error
	// Clear signs out: removes the persisted pointer.
	Clear(ctx context.Context) error
}
