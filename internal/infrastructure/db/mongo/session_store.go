package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskdeck/task-system/internal/core/domain"
)

const (
	collectionSessions = "sessions"
	// There is at most one active session; it lives under a fixed id.
	currentSessionID = "current"
)

// SessionStore persists the single active-session pointer.
type SessionStore struct {
	col *mongo.Collection
}

func NewSessionStore(db *mongo.Database) *SessionStore {
	return &SessionStore{col: db.Collection(collectionSessions)}
}

type sessionDoc struct {
	ID          string `bson:"_id"`
	AccountID   string `bson:"account_id"`
	DisplayName string `bson:"display_name"`
}

func (s *SessionStore) Put(ctx context.Context, session domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := sessionDoc{
		ID:          currentSessionID,
		AccountID:   session.AccountID,
		DisplayName: session.DisplayName,
	}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": currentSessionID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sessionDoc
	if err := s.col.FindOne(ctx, bson.M{"_id": currentSessionID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return &domain.Session{AccountID: doc.AccountID, DisplayName: doc.DisplayName}, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": currentSessionID}); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
