// Package metrics defines all custom Prometheus metrics for the todo API.
// It is the single source of truth for metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todoapi"

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected" (all rejection causes collapse here, matching
//     the uniform external response)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account creations.
// Label:
//   - result: "ok", "conflict", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts request-time token validations. The reason
// label preserves the internal distinction the API response deliberately
// hides.
// Label:
//   - reason: "ok", "missing", "expired", "bad_signature", "malformed", "invalid"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of token validations, by internal rejection reason.",
	},
	[]string{"reason"},
)

// TodosCreatedTotal counts created todos.
var TodosCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_created_total",
		Help:      "Total number of todos created.",
	},
)

// TodoCacheTotal counts per-owner list cache lookups.
// Label:
//   - result: "hit" or "miss"
var TodoCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todo_cache_total",
		Help:      "Total number of todo list cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
