package ports

import (
	"context"

	"github.com/taskdeck/task-system/internal/core/domain"
)

// AccountRepository persists the username→account mapping. Account.ID is
// always the normalized username; implementations key storage by it.
type AccountRepository interface {
	// Create stores a new account. Returns domain.ErrAccountExists when the
	// normalized username is already taken.
	Create(ctx context.Context, account *domain.Account) error
	// FindByID looks up an account by normalized username. Returns
	// domain.ErrAccountNotFound on a miss.
	FindByID(ctx context.Context, id string) (*domain.Account, error)
}
