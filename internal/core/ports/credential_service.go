package ports

import (
	"context"

	"github.com/taskdeck/task-system/internal/core/domain"
)

// CredentialService handles registration and authentication. Both return the
// account (hash stripped) plus a signed bearer token for the API session.
type CredentialService interface {
	// Register creates an account. Fails with domain.ErrValidation when the
	// trimmed username is shorter than 3 runes or the password shorter than 6,
	// and with domain.ErrAccountExists on a duplicate normalized username.
	Register(ctx context.Context, username, password string) (*domain.Account, string, error)
	// Authenticate verifies a username/password pair. Fails with
	// domain.ErrAccountNotFound for an unknown username and
	// domain.ErrInvalidCredentials for a digest mismatch.
	Authenticate(ctx context.Context, username, password string) (*domain.Account, string, error)
}
