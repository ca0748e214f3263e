package domain

import "errors"

var (
	// ErrValidation covers malformed input the caller must correct and resubmit.
	ErrValidation = errors.New("validation failed")
	// ErrAccountExists is returned when the normalized username is already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotFound is returned when no account matches a normalized username.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials is returned when the password digest does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTaskNotFound is a normal lookup miss; mutating callers treat it as a no-op.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUnauthenticated rejects task mutations without an active account.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrStorageCorrupt marks an unparseable persisted blob. The task loader
	// downgrades it to an empty collection at the service boundary; it never
	// surfaces to a user as a blocking error.
	ErrStorageCorrupt = errors.New("storage corrupt")
)
