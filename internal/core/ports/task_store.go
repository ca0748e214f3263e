package ports

import (
	"context"

	"github.com/taskdeck/task-system/internal/core/domain"
)

// TaskStore persists one task collection per account. The mapping from
// account id to collection is explicit here rather than implicit key
// formatting in callers.
type TaskStore interface {
	// Load reads the raw persisted collection for an account. A missing
	// collection yields an empty slice. An unparseable blob yields
	// domain.ErrStorageCorrupt; the caller decides the recovery policy.
	Load(ctx context.Context, accountID string) ([]domain.Task, error)
	// Save atomically replaces the persisted collection for an account.
	// Subsequent reads never observe a partial write.
	Save(ctx context.Context, accountID string, tasks []domain.Task) error
}
