// Package metrics defines and registers all custom Prometheus metrics for
// the task tracker API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskdeck"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "conflict", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of account registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "high", "med", "low", or "none"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TaskUpdatesTotal counts patch requests. A "noop" patch changed no field
// and therefore persisted nothing.
// Label:
//   - result: "applied", "noop", or "missing"
var TaskUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_updates_total",
		Help:      "Total number of task patch requests, by result.",
	},
	[]string{"result"},
)

// TaskDeletesTotal counts delete requests, including no-op deletes of
// already-removed ids.
var TaskDeletesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_deletes_total",
		Help:      "Total number of task delete requests.",
	},
)

// ── View metrics ──────────────────────────────────────────────────────────────

// ViewRequestsTotal counts visible-sequence derivations.
// Labels:
//   - scope: "all", "day", or "week"
//   - sort:  "created", "dueAt", or "priority"
var ViewRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_requests_total",
		Help:      "Total number of visible-sequence computations, by agenda scope and sort key.",
	},
	[]string{"scope", "sort"},
)
