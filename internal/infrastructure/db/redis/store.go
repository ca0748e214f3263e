package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskdeck/task-system/internal/core/domain"
)

// Store is the namespaced key/value persistence layer:
//
//	users          hash, one field per normalized username
//	session        the active-session pointer, absent when signed out
//	tasks.<id>     one JSON array of task records per account
//
// It implements ports.AccountRepository, ports.SessionStore and
// ports.TaskStore. Every write replaces the whole value, so readers never
// observe a partial collection.
type Store struct {
	client *redis.Client
}

const (
	usersKey       = "users"
	sessionKey     = "session"
	tasksKeyPrefix = "tasks."
)

// NewStore creates a Store wrapping the given Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

type accountRecord struct {
	PasswordHash string    `json:"passwordHash"`
	DisplayName  string    `json:"displayName"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *Store) Create(ctx context.Context, account *domain.Account) error {
	payload, err := json.Marshal(accountRecord{
		PasswordHash: account.PasswordHash,
		DisplayName:  account.DisplayName,
		CreatedAt:    account.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	// HSetNX makes the uniqueness check and the insert one operation.
	created, err := s.client.HSetNX(ctx, usersKey, account.ID, payload).Result()
	if err != nil {
		return fmt.Errorf("store account: %w", err)
	}
	if !created {
		return domain.ErrAccountExists
	}
	return nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	raw, err := s.client.HGet(ctx, usersKey, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	var rec accountRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode account %s: %w", id, domain.ErrStorageCorrupt)
	}

	return &domain.Account{
		ID:           id,
		DisplayName:  rec.DisplayName,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}, nil
}

func (s *Store) Put(ctx context.Context, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, sessionKey, payload, 0).Err()
}

func (s *Store) Get(ctx context.Context) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		// An unreadable pointer is indistinguishable from a stale one.
		return nil, nil
	}
	return &session, nil
}

func (s *Store) Clear(ctx context.Context) error {
	return s.client.Del(ctx, sessionKey).Err()
}

func (s *Store) Load(ctx context.Context, accountID string) ([]domain.Task, error) {
	raw, err := s.client.Get(ctx, tasksKeyPrefix+accountID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	var tasks []domain.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks for %s: %w", accountID, domain.ErrStorageCorrupt)
	}
	return tasks, nil
}

func (s *Store) Save(ctx context.Context, accountID string, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	return s.client.Set(ctx, tasksKeyPrefix+accountID, payload, 0).Err()
}
