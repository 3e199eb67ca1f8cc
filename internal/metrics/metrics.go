// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

// Package metrics exposes Prometheus instrumentation for the HTTP
// API, the SQLite store, the WebSocket hub and the rollover sweeper.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sqlite_query_duration_seconds",
			Help:    "Duration of SQLite queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqlite_query_errors_total",
			Help: "Total number of SQLite query errors",
		},
		[]string{"operation", "table"},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Authentication metrics
	AuthLoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	InvitesRedeemed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_invites_redeemed_total",
			Help: "Total number of invite tokens redeemed",
		},
	)

	// WebSocket metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSBroadcasts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_broadcasts_total",
			Help: "Total number of events broadcast to list subscribers",
		},
		[]string{"type"}, // "todo-added", "todo-updated", "todo-deleted", "rollover"
	)

	// Deadline alert metrics
	AlertsFired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alerts_fired_total",
			Help: "Total number of deadline alerts fired",
		},
		[]string{"kind"}, // "threshold", "cadence", "final-window"
	)

	// Rollover sweeper metrics
	SweepRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_runs_total",
			Help: "Total number of rollover sweep ticks",
		},
	)

	SweepDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sweep_duration_seconds",
			Help:    "Duration of rollover sweeps in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	SweepListsRolledOver = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_lists_rolled_over_total",
			Help: "Total number of lists whose completed todos were reset",
		},
	)

	SweepTodosReset = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_todos_reset_total",
			Help: "Total number of todos reset by rollover sweeps",
		},
	)

	SweepErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sweep_errors_total",
			Help: "Total number of rollover sweep errors",
		},
	)

	SweepLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sweep_last_success_timestamp",
			Help: "Unix timestamp of the last successful sweep",
		},
	)

	// System metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordLoginAttempt records a login attempt and its outcome.
func RecordLoginAttempt(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	AuthLoginAttempts.WithLabelValues(result).Inc()
}

// RecordAlert records one fired deadline alert.
func RecordAlert(kind string) {
	AlertsFired.WithLabelValues(kind).Inc()
}

// RecordBroadcast records an event fanned out to list subscribers.
func RecordBroadcast(messageType string) {
	WSBroadcasts.WithLabelValues(messageType).Inc()
}

// RecordSweep records one sweep tick. listsRolledOver counts lists
// where at least one todo was reset; todosReset counts rows changed.
func RecordSweep(duration time.Duration, listsRolledOver, todosReset int64, err error) {
	SweepRuns.Inc()
	SweepDuration.Observe(duration.Seconds())
	if err != nil {
		SweepErrors.Inc()
		return
	}
	SweepListsRolledOver.Add(float64(listsRolledOver))
	SweepTodosReset.Add(float64(todosReset))
	SweepLastSuccess.Set(float64(time.Now().Unix()))
}
