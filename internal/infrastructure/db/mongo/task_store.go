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

const collectionTasks = "tasks"

// TaskStore keeps one document per account holding that account's whole
// ordered task collection. ReplaceOne makes every save a single atomic
// swap, so a reader never sees a half-written collection.
type TaskStore struct {
	col *mongo.Collection
}

func NewTaskStore(db *mongo.Database) *TaskStore {
	return &TaskStore{col: db.Collection(collectionTasks)}
}

type taskCollectionDoc struct {
	ID    string        `bson:"_id"` // account id
	Items []domain.Task `bson:"items"`
}

func (s *TaskStore) Load(ctx context.Context, accountID string) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := s.col.FindOne(ctx, bson.M{"_id": accountID}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	// The document was fetched; a failure from here on means the stored
	// bytes no longer match the schema.
	var doc taskCollectionDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode tasks for %s: %w", accountID, domain.ErrStorageCorrupt)
	}

	if doc.Items == nil {
		return []domain.Task{}, nil
	}
	return doc.Items, nil
}

func (s *TaskStore) Save(ctx context.Context, accountID string, tasks []domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if tasks == nil {
		tasks = []domain.Task{}
	}
	doc := taskCollectionDoc{ID: accountID, Items: tasks}
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": accountID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
