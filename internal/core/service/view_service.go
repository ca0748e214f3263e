package service

import (
	"sort"

	"github.com/taskdeck/task-system/internal/core/domain"
	"github.com/taskdeck/task-system/pkg/dateutil"
)

// VisibleTasks derives the visible ordered sequence from a task collection
// and a view state: status filter, then agenda window, then sort. It is a
// pure function of its inputs and recomputes from scratch on every call;
// there is no cached or incremental view. The input slice is not mutated.
func VisibleTasks(tasks []domain.Task, state domain.ViewState, cal *dateutil.Calendar) []domain.Task {
	out := filterStatus(tasks, state.Filter)
	out = filterAgenda(out, state.Scope, state.Anchor, cal)
	sortTasks(out, state.Sort)
	return out
}

// EffectiveAnchor resolves the anchor date a view state is evaluated
// against: a normalized valid anchor, otherwise today. Clients use it to
// pre-fill due dates when composing in day or week scope.
func EffectiveAnchor(state domain.ViewState, cal *dateutil.Calendar) string {
	if a := cal.Normalize(state.Anchor); a != "" {
		return a
	}
	return cal.Today()
}

func filterStatus(tasks []domain.Task, filter domain.StatusFilter) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		switch filter {
		case domain.FilterActive:
			if t.Completed {
				continue
			}
		case domain.FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// filterAgenda keeps tasks whose due date falls inside the window. An
// undated task cannot belong to a specific day or week, so it is excluded
// whenever the scope is narrower than all.
func filterAgenda(tasks []domain.Task, scope domain.AgendaScope, anchor string, cal *dateutil.Calendar) []domain.Task {
	if scope == domain.ScopeAll || scope == "" {
		return tasks
	}

	anchor = EffectiveAnchor(domain.ViewState{Anchor: anchor}, cal)
	start, end := anchor, anchor
	if scope == domain.ScopeWeek {
		start, end = cal.WeekRange(anchor)
	}

	out := tasks[:0]
	for _, t := range tasks {
		if t.DueAt == "" {
			continue
		}
		if t.DueAt >= start && t.DueAt <= end {
			out = append(out, t)
		}
	}
	return out
}

// sortTasks orders in place by the sort key. Every mode breaks ties by
// createdAt descending, so equal keys keep newest-first order.
func sortTasks(tasks []domain.Task, key domain.SortKey) {
	newerFirst := func(a, b domain.Task) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}

	switch key {
	case domain.SortDueAt:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i], tasks[j]
			// Undated tasks sort after every dated one.
			if (a.DueAt == "") != (b.DueAt == "") {
				return a.DueAt != ""
			}
			if a.DueAt != b.DueAt {
				return a.DueAt < b.DueAt
			}
			return newerFirst(a, b)
		})
	case domain.SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i], tasks[j]
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() > b.Priority.Rank()
			}
			return newerFirst(a, b)
		})
	default: // created
		sort.SliceStable(tasks, func(i, j int) bool {
			return newerFirst(tasks[i], tasks[j])
		})
	}
}
