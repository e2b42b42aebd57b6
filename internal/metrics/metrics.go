// Package metrics defines and registers all custom Prometheus metrics for the
// SajiloKaam client core. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sajilokaam"

// APIRequestsTotal counts outbound REST calls to the backend.
// Labels:
//   - method: HTTP method (GET, POST, …)
//   - endpoint: logical endpoint name (e.g. "auth_login", "jobs_list")
//   - status: HTTP status code, or "error" when no response was received
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of outbound API requests, by endpoint and status.",
	},
	[]string{"method", "endpoint", "status"},
)

// APIRequestDuration measures wall time of an outbound call including body
// decode.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of outbound API requests from send to decode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// SessionOperationsTotal counts session lifecycle outcomes.
// Labels:
//   - operation: "login", "register", "logout", "profile_fetch"
//   - result: "ok", "rejected", "invalid"
var SessionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_operations_total",
		Help:      "Total number of session operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// RouterRedirectsTotal counts automatic page transitions applied by the
// router's redirect rules.
// Label:
//   - rule: "post_login" or "logout_guard"
var RouterRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "router_redirects_total",
		Help:      "Total number of forced navigations, by redirect rule.",
	},
	[]string{"rule"},
)
