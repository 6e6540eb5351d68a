// Package metrics defines and registers all custom Prometheus metrics for
// the RBAC service. It is the single source of truth for metric names,
// labels, and help strings; promauto registers everything with the default
// registry at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rbac"

// LoginsTotal counts login attempts.
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

// RegistrationsTotal counts account creations.
// Label:
//   - origin: "self" (registration) or "admin" (created by an administrator)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by origin.",
	},
	[]string{"origin"},
)

// TokenResolutionsTotal counts bearer token resolutions performed by the
// auth middleware.
// Label:
//   - result: "ok", "invalid_token", "unknown_subject"
var TokenResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_resolutions_total",
		Help:      "Total number of bearer token resolutions, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts authorization gate decisions.
// Labels:
//   - outcome: "permit" or "deny"
//   - reason: denial reason ("inactive account", "insufficient privilege"),
//     empty on permit
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by outcome and reason.",
	},
	[]string{"outcome", "reason"},
)

// AuditPublishTotal counts audit fan-out deliveries to the external stream.
// Label:
//   - result: "ok", "error", or "dropped" (shard buffer full)
var AuditPublishTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_publish_total",
		Help:      "Total number of audit entries handed to the external stream, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the entries pending in each fan-out worker shard.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each fan-out worker shard.",
	},
	[]string{"worker_id"},
)
