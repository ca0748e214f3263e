package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/taskdeck/task-system/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if _, exists := r.accounts[account.ID]; exists {
		return domain.ErrAccountExists
	}
	r.accounts[account.ID] = cloneAccount(account)
	return nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func newTestCredentialService(repo *stubAccountRepo) *CredentialService {
	return NewCredentialService(repo, "secret", time.Hour, zerolog.Nop())
}

func TestCredentialService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestCredentialService(repo)

	account, token, err := svc.Register(context.Background(), "Alice", "hunter22")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.ID != "alice" {
		t.Fatalf("expected normalized id alice, got %q", account.ID)
	}
	if account.DisplayName != "Alice" {
		t.Fatalf("expected display name Alice, got %q", account.DisplayName)
	}
	if account.PasswordHash != "" {
		t.Fatalf("returned account must not carry the hash")
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	stored := repo.accounts["alice"]
	if stored.PasswordHash != HashPassword("hunter22") {
		t.Fatalf("stored hash does not match digest of password")
	}
	if stored.PasswordHash == "hunter22" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestCredentialService_Register_Validation(t *testing.T) {
	svc := newTestCredentialService(newStubAccountRepo())

	if _, _, err := svc.Register(context.Background(), "ab", "longenough"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short username: expected ErrValidation, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "  ab  ", "longenough"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("whitespace-padded short username: expected ErrValidation, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "alice", "short"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("short password: expected ErrValidation, got %v", err)
	}
}

func TestCredentialService_Register_DuplicateIgnoresCase(t *testing.T) {
	svc := newTestCredentialService(newStubAccountRepo())

	if _, _, err := svc.Register(context.Background(), "Bob", "password1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "bob", "password2"); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "  BOB  ", "password3"); !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists for padded casing, got %v", err)
	}
}

func TestCredentialService_Authenticate(t *testing.T) {
	svc := newTestCredentialService(newStubAccountRepo())

	if _, _, err := svc.Register(context.Background(), "Alice", "rightpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	account, token, err := svc.Authenticate(context.Background(), "alice", "rightpass")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if account.DisplayName != "Alice" {
		t.Fatalf("expected original-case display name, got %q", account.DisplayName)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "alice" || claims["name"] != "Alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestCredentialService_Authenticate_WrongPassword(t *testing.T) {
	svc := newTestCredentialService(newStubAccountRepo())

	_, _, _ = svc.Register(context.Background(), "alice", "rightpass")
	if _, _, err := svc.Authenticate(context.Background(), "alice", "wrongpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCredentialService_Authenticate_UnknownUser(t *testing.T) {
	svc := newTestCredentialService(newStubAccountRepo())

	if _, _, err := svc.Authenticate(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	a := HashPassword("samepassword")
	b := HashPassword("samepassword")
	if a != b {
		t.Fatalf("digest is not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	for _, r := range a {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("digest contains non lowercase-hex rune %q", r)
		}
	}
}
