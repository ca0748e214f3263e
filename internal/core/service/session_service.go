package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/taskdeck/task-system/internal/core/domain"
	"github.com/taskdeck/task-system/internal/core/ports"
)

// SessionService maintains the single persisted session pointer and resolves
// it against the account repository on restore.
type SessionService struct {
	sessions ports.SessionStore
	accounts ports.AccountRepository
	log      zerolog.Logger
}

func NewSessionService(sessions ports.SessionStore, accounts ports.AccountRepository, log zerolog.Logger) *SessionService {
	return &SessionService{sessions: sessions, accounts: accounts, log: log}
}

// Restore resolves the persisted pointer. A pointer referencing an account
// that no longer exists is discarded and the caller sees the signed-out state.
func (s *SessionService) Restore(ctx context.Context) (*domain.Account, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	account, err := s.accounts.FindByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.log.Warn().Str("account", session.AccountID).Msg("stale session pointer discarded")
			if clearErr := s.sessions.Clear(ctx); clearErr != nil {
				s.log.Warn().Err(clearErr).Msg("failed to clear stale session")
			}
			return nil, nil
		}
		return nil, err
	}

	return stripHash(account), nil
}

// Activate persists account as the current session, replacing any prior pointer.
func (s *SessionService) Activate(ctx context.Context, account *domain.Account) error {
	return s.sessions.Put(ctx, domain.Session{
		AccountID:   account.ID,
		DisplayName: account.DisplayName,
	})
}

// Clear removes the persisted pointer.
func (s *SessionService) Clear(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}
