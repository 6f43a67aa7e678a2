// Package metrics defines and registers the custom Prometheus metrics of the
// Q&A API. It is the single source of truth for metric names, labels and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stackoverflow"

// ── Account metrics ───────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - result: "created", "duplicate" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// SigninsTotal counts signin attempts.
// Label:
//   - result: "success", "unknown_user", "bad_credentials" or "error"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of signin attempts, by result.",
	},
	[]string{"result"},
)

// SignoutsTotal counts successful signouts.
var SignoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signouts_total",
		Help:      "Total number of sessions signed out.",
	},
)

// ── Error metrics ─────────────────────────────────────────────────────────────

// ErrorResponsesTotal counts error envelopes written by the error handler.
// Labels:
//   - code: the error code sent to the client (e.g. "ATHR-003", "HTTP-404")
//   - status: the HTTP status code
var ErrorResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "error_responses_total",
		Help:      "Total number of error responses, by code and HTTP status.",
	},
	[]string{"code", "status"},
)
