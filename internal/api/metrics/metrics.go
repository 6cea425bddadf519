// Package metrics defines and registers all custom Prometheus metrics for
// the account service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "account"

// RegistrationsTotal counts registration attempts by outcome.
// Labels:
//   - outcome: "success", "username_taken", "email_taken", "role_not_found",
//     "invalid_input", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// UsersDeletedTotal counts successful user deletions.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted.",
	},
)

// AuditQueueDepth tracks the current number of account events waiting in
// each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of account events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditErrorsTotal counts account events that failed to reach the audit
// trail.
// Label:
//   - reason: "queue_full" or "persist_failed"
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of account events that failed to be recorded.",
	},
	[]string{"reason"},
)
