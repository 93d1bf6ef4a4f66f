// Package metrics defines the custom Prometheus metrics of the catalog API.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry on package init;
// HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication flows.
// Labels:
//   - operation: "register", "login" or "create_user"
//   - result: "success" or the error kind ("validation", "invalid_credentials", …)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration, login and user-creation attempts.",
	},
	[]string{"operation", "result"},
)

// AuthorizationDenialsTotal counts requests refused by the authorization
// middleware.
// Label:
//   - reason: "missing_token", "invalid_token", "role" or "ownership"
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of requests rejected by authentication or authorization checks.",
	},
	[]string{"reason"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ServiceMutationsTotal counts successful catalog writes.
// Label:
//   - operation: "create", "update" or "delete"
var ServiceMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_mutations_total",
		Help:      "Total number of services created, updated or deleted.",
	},
	[]string{"operation"},
)
