package domain

import (
	"strings"
	"time"
)

// Account is a registered user. ID is the normalized username (trimmed,
// lowercased) and doubles as the storage-namespace key for the account's
// task collection. DisplayName keeps the casing entered at registration.
type Account struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NormalizeUsername produces the canonical account key: trim, then lowercase.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Session is the persisted pointer to the active account. At most one
// exists at a time; activating an account replaces any prior pointer.
type Session struct {
	AccountID   string `json:"id"`
	DisplayName string `json:"displayName"`
}
