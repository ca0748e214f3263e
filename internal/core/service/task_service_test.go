package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdeck/task-system/internal/core/domain"
	"github.com/taskdeck/task-system/internal/core/ports"
	"github.com/taskdeck/task-system/pkg/dateutil"
)

type stubTaskStore struct {
	collections map[string][]domain.Task
	corrupt     map[string]bool
	saves       int
}

func newStubTaskStore() *stubTaskStore {
	return &stubTaskStore{
		collections: make(map[string][]domain.Task),
		corrupt:     make(map[string]bool),
	}
}

func (s *stubTaskStore) Load(_ context.Context, accountID string) ([]domain.Task, error) {
	if s.corrupt[accountID] {
		return nil, domain.ErrStorageCorrupt
	}
	tasks := s.collections[accountID]
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out, nil
}

func (s *stubTaskStore) Save(_ context.Context, accountID string, tasks []domain.Task) error {
	stored := make([]domain.Task, len(tasks))
	copy(stored, tasks)
	s.collections[accountID] = stored
	s.saves++
	return nil
}

func newTestTaskService(store *stubTaskStore) *TaskService {
	return NewTaskService(store, dateutil.New(time.UTC), zerolog.Nop())
}

func TestTaskService_Create(t *testing.T) {
	store := newStubTaskStore()
	svc := newTestTaskService(store)

	task, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title: "  Write report  ",
		DueAt: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if task.ID == "" {
		t.Fatalf("expected an id")
	}
	if task.Title != "Write report" {
		t.Fatalf("expected trimmed title, got %q", task.Title)
	}
	if task.Completed {
		t.Fatalf("new tasks default to not completed")
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Fatalf("createdAt and updatedAt must match on creation")
	}
	if task.DueAt != "2024-03-01" {
		t.Fatalf("unexpected dueAt %q", task.DueAt)
	}
}

func TestTaskService_Create_EmptyTitle(t *testing.T) {
	svc := newTestTaskService(newStubTaskStore())

	if _, err := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "   "}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTaskService_Create_PrependsNewestFirst(t *testing.T) {
	store := newStubTaskStore()
	svc := newTestTaskService(store)

	_, _ = svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "first"})
	_, _ = svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "second"})

	tasks, err := svc.List(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title != "second" || tasks[1].Title != "first" {
		t.Fatalf("expected newest-first order, got %+v", tasks)
	}
}

func TestTaskService_Create_Unauthenticated(t *testing.T) {
	svc := newTestTaskService(newStubTaskStore())

	if _, err := svc.Create(context.Background(), "", ports.CreateTaskInput{Title: "x"}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestTaskService_Update_NoopLeavesEverythingUntouched(t *testing.T) {
	store := newStubTaskStore()
	svc := newTestTaskService(store)

	created, _ := svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title:    "Write report",
		DueAt:    "2024-03-01",
		Priority: "high",
	})
	savesBefore := store.saves

	title := "Write report"
	due := "2024-03-01"
	priority := "high"
	completed := false
	task, changed, err := svc.Update(context.Background(), "alice", created.ID, ports.TaskPatch{
		Title:     &title,
		DueAt:     &due,
		Priority:  &priority,
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if changed {
		t.Fatalf("identical patch must be a no-op")
	}
	if store.saves != savesBefore {
		t.Fatalf("no-op patch must not persist")
	}
	if !task.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("no-op patch must not bump updatedAt")
	}
}

func TestTaskService_Update_BumpsTimestampAndPersists(t *testing.T) {
	store := newStubTaskStore()
	svc := newTestTaskService(store)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	created, _ := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "Write report"})

	svc.now = func() time.Time { return base.Add(time.Minute) }
	completed := true
	task, changed, err := svc.Update(context.Background(), "alice", created.ID, ports.TaskPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !changed {
		t.Fatalf("expected a change")
	}
	if !task.Completed {
		t.Fatalf("expected completed=true")
	}
	if !task.UpdatedAt.After(task.CreatedAt) {
		t.Fatalf("updatedAt must move past createdAt, got %v / %v", task.UpdatedAt, task.CreatedAt)
	}

	reloaded, _ := svc.Get(context.Background(), "alice", created.ID)
	if !reloaded.Completed {
		t.Fatalf("change was not persisted")
	}
}

func TestTaskService_Update_UnknownIDIsNoop(t *testing.T) {
	store := newStubTaskStore()
	svc := newTestTaskService(store)
	savesBefore := store.saves

	completed := true
	task, changed, err := svc.Update(context.Background(), "alice", "missing", ports.TaskPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("update on missing id must not error: %v", err)
	}
	if task != nil || changed {
		t.Fatalf("expected silent no-op, got task=%+v changed=%v", task, changed)
	}
	if store.saves != savesBefore {
		t.Fatalf("no-op must not persist")
	}
}

func TestTaskService_Update_BlankTitleRejected(t *testing.T) {
	svc := newTestTaskService(newStubTaskStore())
	created, _ := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "keep me"})

	blank := "   "
	if _, _, err := svc.Update(context.Background(), "alice", created.ID, ports.TaskPatch{Title: &blank}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTaskService_Remove(t *testing.T) {
	store := newStubTaskStore()
	svc := newTestTaskService(store)

	created, _ := svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "doomed"})
	if err := svc.Remove(context.Background(), "alice", created.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), "alice", created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound after removal, got %v", err)
	}

	savesBefore := store.saves
	if err := svc.Remove(context.Background(), "alice", "missing"); err != nil {
		t.Fatalf("remove of missing id must be a no-op: %v", err)
	}
	if store.saves != savesBefore {
		t.Fatalf("no-op remove must not persist")
	}
}

func TestTaskService_List_NormalizesRawRecords(t *testing.T) {
	store := newStubTaskStore()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store.collections["alice"] = []domain.Task{
		{ID: "t1", Title: "good", DueAt: "2024-03-05", Priority: "high", CreatedAt: created, UpdatedAt: created},
		{ID: "", Title: "no id", CreatedAt: created, UpdatedAt: created},
		{ID: "t3", Title: "   ", CreatedAt: created, UpdatedAt: created},
		{ID: "t4", Title: "bad extras", DueAt: "soonish", Priority: "urgent", CreatedAt: created, UpdatedAt: created.Add(-time.Hour)},
	}
	svc := newTestTaskService(store)

	tasks, err := svc.List(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected records without id/title dropped, got %d tasks", len(tasks))
	}
	fixed := tasks[1]
	if fixed.DueAt != "" {
		t.Fatalf("malformed dueAt must coerce to absent, got %q", fixed.DueAt)
	}
	if fixed.Priority != "" {
		t.Fatalf("malformed priority must coerce to absent, got %q", fixed.Priority)
	}
	if fixed.UpdatedAt.Before(fixed.CreatedAt) {
		t.Fatalf("updatedAt must never precede createdAt")
	}
}

func TestTaskService_List_CorruptStorageRecoversEmpty(t *testing.T) {
	store := newStubTaskStore()
	store.corrupt["alice"] = true
	svc := newTestTaskService(store)

	tasks, err := svc.List(context.Background(), "alice")
	if err != nil {
		t.Fatalf("corrupt storage must not surface an error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty collection, got %d", len(tasks))
	}
}

func TestTaskService_CollectionsAreIsolatedPerAccount(t *testing.T) {
	store := newStubTaskStore()
	svc := newTestTaskService(store)

	_, _ = svc.Create(context.Background(), "alice", ports.CreateTaskInput{Title: "alice task"})
	_, _ = svc.Create(context.Background(), "bob", ports.CreateTaskInput{Title: "bob task"})

	bobTasks, _ := svc.List(context.Background(), "bob")
	if len(bobTasks) != 1 || bobTasks[0].Title != "bob task" {
		t.Fatalf("bob must only see his own tasks, got %+v", bobTasks)
	}
}

func TestTaskService_SaveLoadRoundTrip(t *testing.T) {
	store := newStubTaskStore()
	svc := newTestTaskService(store)

	created, _ := svc.Create(context.Background(), "alice", ports.CreateTaskInput{
		Title:       "Round trip",
		Description: "unused by the UI but carried through",
		DueAt:       "2024-06-15",
		Priority:    "med",
	})

	tasks, err := svc.List(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != created.ID || got.Title != created.Title || got.Description != created.Description ||
		got.DueAt != created.DueAt || got.Priority != created.Priority ||
		!got.CreatedAt.Equal(created.CreatedAt) || !got.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("round trip mismatch:\nsaved  %+v\nloaded %+v", created, got)
	}
}
