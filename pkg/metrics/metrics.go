package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	ReconciliationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconciliation_runs_total",
			Help: "Total number of daily reconciliation runs",
		},
		[]string{"status"}, // status: committed, aborted
	)

	HabitsFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habits_failed_total",
			Help: "Total number of habit-days marked failed by reconciliation",
		},
	)

	TrackingUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_updates_total",
			Help: "Total number of tracking record upserts",
		},
		[]string{"source"}, // source: api, reconcile
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of failure notification attempts",
		},
		[]string{"status"}, // status: success, failed, disabled
	)

	DashboardCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_total",
			Help: "Dashboard month-view cache lookups",
		},
		[]string{"result"}, // result: hit, miss
	)
)

// RecordHTTPRequestDuration records one served HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration records one database query.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// IncrementReconciliationRun counts a finished reconciliation tick.
func IncrementReconciliationRun(status string) {
	ReconciliationRuns.WithLabelValues(status).Inc()
}

// IncrementTrackingUpdate counts a tracking upsert by origin.
func IncrementTrackingUpdate(source string) {
	TrackingUpdates.WithLabelValues(source).Inc()
}

// IncrementNotification counts a notification attempt outcome.
func IncrementNotification(status string) {
	NotificationsSent.WithLabelValues(status).Inc()
}
