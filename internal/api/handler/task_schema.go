package handler

import (
	"time"

	"github.com/taskdeck/task-system/internal/core/domain"
	"github.com/taskdeck/task-system/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	DueAt       string `json:"dueAt"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low med high"`
}

// patchTaskRequest distinguishes "field absent" from "field set to zero":
// only pointers that bound to a JSON key are applied.
type patchTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	DueAt       *string `json:"dueAt"`
	Priority    *string `json:"priority"  validate:"omitempty,oneof=low med high"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal domain changes.

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Completed   bool      `json:"completed"`
	Description string    `json:"description,omitempty"`
	DueAt       string    `json:"dueAt,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type taskListResponse struct {
	Items  []taskResponse `json:"items"`
	Count  int            `json:"count"`
	Anchor string         `json:"anchor"`
	Filter string         `json:"filter"`
	Scope  string         `json:"scope"`
	Sort   string         `json:"sort"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Completed:   t.Completed,
		Description: t.Description,
		DueAt:       t.DueAt,
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskListItems(tasks []domain.Task) []taskResponse {
	items := make([]taskResponse, len(tasks))
	for i := range tasks {
		items[i] = toTaskResponse(&tasks[i])
	}
	return items
}

func toCreateInput(r createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueAt:       r.DueAt,
		Priority:    r.Priority,
	}
}

func toTaskPatch(r patchTaskRequest) ports.TaskPatch {
	return ports.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		DueAt:       r.DueAt,
		Priority:    r.Priority,
	}
}
