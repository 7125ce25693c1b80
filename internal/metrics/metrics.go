// Package metrics exposes Prometheus collectors for the HTTP surface and
// the request lifecycle
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RequestStatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "request_status_transitions_total",
			Help: "Purchase request status transitions",
		},
		[]string{"from", "to"},
	)

	StockMovementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_movements_total",
			Help: "Stock ledger movements by type",
		},
		[]string{"type"},
	)

	VersionConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "version_conflicts_total",
			Help: "Optimistic concurrency conflicts on aggregate updates",
		},
	)
)
