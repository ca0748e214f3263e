package ports

import (
	"context"

	"github.com/taskdeck/task-system/internal/core/domain"
)

// CreateTaskInput carries the fields a new task may be created with.
// DueAt accepts any date-like input; it is normalized to YYYY-MM-DD or
// dropped if unparseable.
type CreateTaskInput struct {
	Title       string
	Description string
	DueAt       string
	Priority    string
}

// TaskPatch is a partial update: only non-nil fields are applied. A patch
// whose present fields all equal the current values is a no-op — no
// timestamp bump, no persistence.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	DueAt       *string
	Priority    *string
}

// TaskService owns per-account task collections: CRUD plus the derived
// visible sequence. Every mutation is write-through; storage and the
// returned state are consistent before any call returns.
type TaskService interface {
	// List returns the normalized full collection for an account.
	// Corrupt storage is recovered as an empty collection, never an error.
	List(ctx context.Context, accountID string) ([]domain.Task, error)
	// Visible derives the ordered visible sequence from the account's
	// collection and the given view state.
	Visible(ctx context.Context, accountID string, state domain.ViewState) ([]domain.Task, error)
	// Create adds a task at the head of the collection (newest first).
	// Fails with domain.ErrValidation when the title is empty after trimming.
	Create(ctx context.Context, accountID string, input CreateTaskInput) (*domain.Task, error)
	// Get looks up a task by id. Returns domain.ErrTaskNotFound on a miss.
	Get(ctx context.Context, accountID, taskID string) (*domain.Task, error)
	// Update applies a patch. The returned bool is false when the patch
	// changed nothing. An unknown id is a silent no-op: (nil, false, nil).
	// The caller may race with a prior deletion; that is not an error.
	Update(ctx context.Context, accountID, taskID string, patch TaskPatch) (*domain.Task, bool, error)
	// Remove deletes by id. A missing id is a silent no-op, not an error.
	Remove(ctx context.Context, accountID, taskID string) error
}
