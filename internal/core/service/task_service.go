package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskdeck/task-system/internal/core/domain"
	"github.com/taskdeck/task-system/internal/core/ports"
	"github.com/taskdeck/task-system/pkg/dateutil"
)

// TaskService owns per-account task collections. Every mutation loads the
// collection, applies the change, and writes the whole collection back before
// returning, so storage and the returned state never diverge.
type TaskService struct {
	store ports.TaskStore
	cal   *dateutil.Calendar
	log   zerolog.Logger
	now   func() time.Time
}

func NewTaskService(store ports.TaskStore, cal *dateutil.Calendar, log zerolog.Logger) *TaskService {
	return &TaskService{
		store: store,
		cal:   cal,
		log:   log,
		now:   time.Now,
	}
}

// List returns the normalized collection for an account. A corrupt persisted
// blob is recovered here as an empty collection: the recovery policy lives in
// this one place instead of scattered across callers.
func (s *TaskService) List(ctx context.Context, accountID string) ([]domain.Task, error) {
	if accountID == "" {
		return nil, domain.ErrUnauthenticated
	}

	raw, err := s.store.Load(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrStorageCorrupt) {
			s.log.Warn().Err(err).Str("account", accountID).Msg("task collection unreadable, starting empty")
			return []domain.Task{}, nil
		}
		return nil, err
	}
	return s.normalize(accountID, raw), nil
}

// Visible derives the ordered visible sequence for an account and view state.
func (s *TaskService) Visible(ctx context.Context, accountID string, state domain.ViewState) ([]domain.Task, error) {
	tasks, err := s.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return VisibleTasks(tasks, state, s.cal), nil
}

// Create adds a new task at the head of the collection.
func (s *TaskService) Create(ctx context.Context, accountID string, input ports.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrValidation)
	}

	tasks, err := s.List(ctx, accountID)
	if err != nil {
		return nil, err
	}

	priority, _ := domain.ParsePriority(input.Priority)
	now := s.now().UTC()
	task := domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		DueAt:       s.cal.Normalize(input.DueAt),
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tasks = append([]domain.Task{task}, tasks...)
	if err := s.store.Save(ctx, accountID, tasks); err != nil {
		return nil, err
	}

	s.log.Info().Str("account", accountID).Str("task", task.ID).Msg("task created")
	return &task, nil
}

// Get looks up a task by id.
func (s *TaskService) Get(ctx context.Context, accountID, taskID string) (*domain.Task, error) {
	tasks, err := s.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == taskID {
			return &tasks[i], nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

// Update applies a partial patch. When every present field equals the current
// value nothing is persisted and the timestamp stays put; callers rely on
// that to avoid spurious re-renders. An unknown id is a silent no-op.
func (s *TaskService) Update(ctx context.Context, accountID, taskID string, patch ports.TaskPatch) (*domain.Task, bool, error) {
	tasks, err := s.List(ctx, accountID)
	if err != nil {
		return nil, false, err
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false, nil
	}

	updated, changed, err := s.applyPatch(tasks[idx], patch)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return &tasks[idx], false, nil
	}

	updated.UpdatedAt = s.now().UTC()
	tasks[idx] = updated
	if err := s.store.Save(ctx, accountID, tasks); err != nil {
		return nil, false, err
	}

	s.log.Info().Str("account", accountID).Str("task", taskID).Msg("task updated")
	return &tasks[idx], true, nil
}

// Remove deletes by id. A missing id leaves storage untouched.
func (s *TaskService) Remove(ctx context.Context, accountID, taskID string) error {
	tasks, err := s.List(ctx, accountID)
	if err != nil {
		return err
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return nil
	}

	if err := s.store.Save(ctx, accountID, kept); err != nil {
		return err
	}
	s.log.Info().Str("account", accountID).Str("task", taskID).Msg("task removed")
	return nil
}

// applyPatch returns the patched task and whether any field actually changed.
func (s *TaskService) applyPatch(task domain.Task, patch ports.TaskPatch) (domain.Task, bool, error) {
	changed := false

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return task, false, fmt.Errorf("title cannot be blank: %w", domain.ErrValidation)
		}
		if title != task.Title {
			task.Title = title
			changed = true
		}
	}
	if patch.Description != nil && *patch.Description != task.Description {
		task.Description = *patch.Description
		changed = true
	}
	if patch.Completed != nil && *patch.Completed != task.Completed {
		task.Completed = *patch.Completed
		changed = true
	}
	if patch.DueAt != nil {
		due := s.cal.Normalize(*patch.DueAt)
		if due != task.DueAt {
			task.DueAt = due
			changed = true
		}
	}
	if patch.Priority != nil {
		priority, _ := domain.ParsePriority(*patch.Priority)
		if priority != task.Priority {
			task.Priority = priority
			changed = true
		}
	}

	return task, changed, nil
}

// normalize repairs raw persisted records: records without an id or title are
// dropped, malformed dates and priorities degrade to absent, and updatedAt is
// clamped so it never precedes createdAt.
func (s *TaskService) normalize(accountID string, raw []domain.Task) []domain.Task {
	tasks := make([]domain.Task, 0, len(raw))
	for _, t := range raw {
		t.Title = strings.TrimSpace(t.Title)
		if t.ID == "" || t.Title == "" {
			s.log.Warn().Str("account", accountID).Str("task", t.ID).Msg("dropping malformed task record")
			continue
		}
		t.DueAt = s.cal.Normalize(t.DueAt)
		if p, ok := domain.ParsePriority(string(t.Priority)); ok {
			t.Priority = p
		} else {
			t.Priority = ""
		}
		if t.UpdatedAt.Before(t.CreatedAt) {
			t.UpdatedAt = t.CreatedAt
		}
		tasks = append(tasks, t)
	}
	return tasks
}
