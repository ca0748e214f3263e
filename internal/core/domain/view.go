package domain

// StatusFilter narrows the visible set by completion state.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// AgendaScope narrows the visible set by due date relative to an anchor.
type AgendaScope string

const (
	ScopeAll  AgendaScope = "all"
	ScopeDay  AgendaScope = "day"
	ScopeWeek AgendaScope = "week"
)

// SortKey selects the ordering of the visible sequence.
type SortKey string

const (
	SortCreated  SortKey = "created"
	SortDueAt    SortKey = "dueAt"
	SortPriority SortKey = "priority"
)

// ViewState is the full set of inputs the view engine derives the visible
// sequence from, besides the task collection itself. Anchor is a YYYY-MM-DD
// date; it is only consulted when Scope is day or week.
type ViewState struct {
	Filter StatusFilter
	Scope  AgendaScope
	Anchor string
	Sort   SortKey
}

func ParseStatusFilter(raw string) (StatusFilter, bool) {
	switch StatusFilter(raw) {
	case FilterAll, FilterActive, FilterCompleted:
		return StatusFilter(raw), true
	case "":
		return FilterAll, true
	}
	return "", false
}

func ParseAgendaScope(raw string) (AgendaScope, bool) {
	switch AgendaScope(raw) {
	case ScopeAll, ScopeDay, ScopeWeek:
		return AgendaScope(raw), true
	case "":
		return ScopeAll, true
	}
	return "", false
}

func ParseSortKey(raw string) (SortKey, bool) {
	switch SortKey(raw) {
	case SortCreated, SortDueAt, SortPriority:
		return SortKey(raw), true
	case "":
		return SortCreated, true
	}
	return "", false
}
