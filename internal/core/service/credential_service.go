package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/sha3"

	"github.com/taskdeck/task-system/internal/core/domain"
	"github.com/taskdeck/task-system/internal/core/ports"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// CredentialService implements registration and authentication against the
// account repository. Operations for the same normalized username are
// serialized so a digest computation never interleaves with another write
// for that account.
type CredentialService struct {
	repo      ports.AccountRepository
	locks     *keyedLock
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewCredentialService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *CredentialService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &CredentialService{
		repo:      repo,
		locks:     newKeyedLock(defaultLockShards),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// HashPassword renders the SHA3-256 digest of password as lowercase hex.
// The digest carries no per-account salt: identical passwords produce
// identical hashes. This is the persisted credential format; changing it
// would orphan every stored account.
func HashPassword(password string) string {
	sum := sha3.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *CredentialService) Register(ctx context.Context, username, password string) (*domain.Account, string, error) {
	display := strings.TrimSpace(username)
	if utf8.RuneCountInString(display) < minUsernameLen {
		return nil, "", fmt.Errorf("username must be at least %d characters: %w", minUsernameLen, domain.ErrValidation)
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, "", fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrValidation)
	}

	id := domain.NormalizeUsername(username)
	unlock := s.locks.lock(id)
	defer unlock()

	account := &domain.Account{
		ID:           id,
		DisplayName:  display,
		PasswordHash: HashPassword(password),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("account", id).Msg("account registered")
	return stripHash(account), token, nil
}

func (s *CredentialService) Authenticate(ctx context.Context, username, password string) (*domain.Account, string, error) {
	id := domain.NormalizeUsername(username)
	unlock := s.locks.lock(id)
	defer unlock()

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if HashPassword(password) != account.PasswordHash {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("account", id).Msg("account authenticated")
	return stripHash(account), token, nil
}

func (s *CredentialService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":  account.ID,
		"name": account.DisplayName,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// stripHash copies an account without its password hash. Service results
// never carry the hash out of this package.
func stripHash(a *domain.Account) *domain.Account {
	clone := *a
	clone.PasswordHash = ""
	return &clone
}
