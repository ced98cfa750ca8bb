// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventorymanager",
		Name:      "cache_lookups_total",
		Help:      "Response cache lookups by result (hit, miss, error).",
	}, []string{"result"})

	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventorymanager",
		Name:      "cache_errors_total",
		Help:      "Response cache backend failures by operation.",
	}, []string{"op"})

	CacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventorymanager",
		Name:      "cache_invalidations_total",
		Help:      "Invalidations applied to the local response cache.",
	})

	AuthDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventorymanager",
		Name:      "api_key_denials_total",
		Help:      "Rejected API key checks by required scope kind.",
	}, []string{"scope"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "inventorymanager",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	JobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventorymanager",
		Name:      "job_runs_total",
		Help:      "Scheduled job executions by job and outcome.",
	}, []string{"job", "outcome"})
)
