// Package metrics defines and registers all custom Prometheus metrics
// for the booking service. It is the single source of truth for metric
// names, labels, and help strings. All metrics register themselves with
// the default registry at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// AdmissionsTotal counts reservation admission attempts by outcome.
// Labels:
//   - outcome: "admitted", "invalid_interval", "room_not_found",
//     "conflict", "unknown_user", "ambiguous_user", "store_error"
var AdmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admissions_total",
		Help:      "Total number of reservation admission attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AdmissionDuration measures how long a single admission takes from
// validation start to persistence.
var AdmissionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "admission_duration_seconds",
		Help:      "Duration of reservation admission from validation to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// CancellationsTotal counts reservation deletions.
// Label:
//   - result: "removed" or "not_found"
var CancellationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cancellations_total",
		Help:      "Total number of reservation deletion requests, by result.",
	},
	[]string{"result"},
)

// HTTPRequestsTotal counts handled HTTP requests.
// Labels:
//   - method: HTTP method
//   - route: the Echo route pattern (e.g. "/v1/rooms/:id")
//   - status: numeric status code as a string
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)
