package domain

import "time"

// Priority ranks a task. Absence (empty string) means "no priority".
type Priority string

const (
	PriorityLow  Priority = "low"
	PriorityMed  Priority = "med"
	PriorityHigh Priority = "high"
)

// ParsePriority validates a raw priority value. Unknown values map to
// the empty priority so malformed stored records degrade instead of failing.
func ParsePriority(raw string) (Priority, bool) {
	switch Priority(raw) {
	case PriorityLow, PriorityMed, PriorityHigh:
		return Priority(raw), true
	case "":
		return "", true
	}
	return "", false
}

// Rank orders priorities for sorting: high > med > low > none.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMed:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task is one unit of work owned by exactly one account.
//
// DueAt is a calendar date in YYYY-MM-DD form with no time component;
// the empty string means the task is undated. Description is carried
// through storage unchanged even though the current clients never set it.
type Task struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Completed   bool      `json:"completed" bson:"completed"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	DueAt       string    `json:"dueAt,omitempty" bson:"due_at,omitempty"`
	Priority    Priority  `json:"priority,omitempty" bson:"priority,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}
