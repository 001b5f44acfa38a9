package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Catalog metrics
	CatalogRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_catalog_refreshes_total",
			Help: "Total number of catalog refreshes",
		},
		[]string{"status"}, // status: success|error
	)

	CatalogRefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentinel_catalog_refresh_duration_seconds",
			Help:    "Catalog refresh duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	CatalogCompanies = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_catalog_companies",
			Help: "Number of companies in the current catalog snapshot",
		},
	)

	CatalogLastRefresh = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinel_catalog_last_refresh_timestamp",
			Help: "Unix timestamp of the last successful catalog refresh",
		},
	)

	// Worker metrics
	WorkerExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_worker_executions_total",
			Help: "Total number of worker executions",
		},
		[]string{"worker", "status"}, // status: success|error
	)

	WorkerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_worker_duration_seconds",
			Help:    "Worker execution duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"worker"},
	)

	WorkerLastRun = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sentinel_worker_last_run_timestamp",
			Help: "Unix timestamp of last worker execution",
		},
		[]string{"worker"},
	)

	// Dashboard metrics
	SessionActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_session_actions_total",
			Help: "Total number of dashboard actions dispatched",
		},
		[]string{"action", "status"}, // status: success|rejected|error
	)

	SessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_sessions_created_total",
			Help: "Total number of dashboard sessions created",
		},
	)

	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"route"},
	)

	// Database metrics
	DBQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"database", "operation", "status"}, // database: postgres|redis
	)

	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"database", "operation"},
	)

	// System metrics
	KafkaMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_kafka_messages_total",
			Help: "Total Kafka messages produced or consumed",
		},
		[]string{"topic", "direction", "status"}, // direction: produced|consumed
	)
)

var initOnce sync.Once

// Init registers all metrics with Prometheus. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			CatalogRefreshes,
			CatalogRefreshDuration,
			CatalogCompanies,
			CatalogLastRefresh,
			WorkerExecutions,
			WorkerDuration,
			WorkerLastRun,
			SessionActions,
			SessionsCreated,
			HTTPRequests,
			HTTPDuration,
			DBQueries,
			DBQueryDuration,
			KafkaMessages,
		)
	})
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordCatalogRefresh records one catalog refresh; size is ignored on failure
func RecordCatalogRefresh(duration time.Duration, size int, err error) {
	CatalogRefreshes.WithLabelValues(status(err)).Inc()
	CatalogRefreshDuration.Observe(duration.Seconds())

	if err == nil {
		CatalogCompanies.Set(float64(size))
		CatalogLastRefresh.SetToCurrentTime()
	}
}

// RecordWorkerExecution records a worker execution
func RecordWorkerExecution(worker string, duration time.Duration, err error) {
	WorkerExecutions.WithLabelValues(worker, status(err)).Inc()
	WorkerDuration.WithLabelValues(worker).Observe(duration.Seconds())
	WorkerLastRun.WithLabelValues(worker).SetToCurrentTime()
}

// RecordSessionAction records a dispatched dashboard action
func RecordSessionAction(action, result string) {
	SessionActions.WithLabelValues(action, result).Inc()
}

// RecordHTTPRequest records a served HTTP request
func RecordHTTPRequest(route string, code int, duration time.Duration) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordDBQuery records a database query
func RecordDBQuery(database, operation string, duration time.Duration, err error) {
	DBQueries.WithLabelValues(database, operation, status(err)).Inc()
	DBQueryDuration.WithLabelValues(database, operation).Observe(duration.Seconds())
}

// RecordKafkaMessage records one produced or consumed Kafka message
func RecordKafkaMessage(topic, direction string, err error) {
	KafkaMessages.WithLabelValues(topic, direction, status(err)).Inc()
}
