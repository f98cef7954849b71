// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domainshare_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "domainshare_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domainshare_workflow_transitions_total",
			Help: "Persisted workflow instance transitions",
		},
		[]string{"from", "to"},
	)

	shareRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domainshare_share_requests_total",
			Help: "Share requests accepted, by mode",
		},
		[]string{"mode"},
	)

	decisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domainshare_approval_decisions_total",
			Help: "Reviewer decisions applied, by action",
		},
		[]string{"action"},
	)

	instancesByState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "domainshare_workflow_instances",
			Help: "Workflow instances per state, refreshed by the recovery sweeper",
		},
		[]string{"state"},
	)

	recoveredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "domainshare_workflow_recovered_total",
			Help: "Instances resumed by the recovery sweeper",
		},
	)
)

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(method, route string, statusCode int, durationSeconds float64) {
	status := "unknown"
	switch {
	case statusCode >= 500:
		status = "5xx"
	case statusCode >= 400:
		status = "4xx"
	case statusCode >= 300:
		status = "3xx"
	case statusCode >= 200:
		status = "2xx"
	}

	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

// RecordTransition counts one persisted state change.
func RecordTransition(from, to string) {
	transitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordShareRequest counts one accepted share request.
func RecordShareRequest(mode string) {
	shareRequestsTotal.WithLabelValues(mode).Inc()
}

// RecordDecision counts one applied reviewer decision.
func RecordDecision(action string) {
	decisionsTotal.WithLabelValues(action).Inc()
}

// RecordRecovered counts instances resumed by the sweeper.
func RecordRecovered(n int) {
	recoveredTotal.Add(float64(n))
}

// SetInstancesByState replaces the per-state instance gauge. States missing
// from counts are reported as zero.
func SetInstancesByState(states []string, counts map[string]int) {
	for _, st := range states {
		instancesByState.WithLabelValues(st).Set(float64(counts[st]))
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
