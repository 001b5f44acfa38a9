package metrics

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"sentinel/pkg/logger"
)

// StoreCollector reports record store and session store sizes at scrape time
type StoreCollector struct {
	log      *logger.Logger
	postgres *sqlx.DB
	redis    redis.UniversalClient

	storedCompanies *prometheus.Desc
	activeSessions  *prometheus.Desc
}

// NewStoreCollector creates a collector; either store may be nil and is then skipped
func NewStoreCollector(log *logger.Logger, postgres *sqlx.DB, rdb redis.UniversalClient) *StoreCollector {
	return &StoreCollector{
		log:      log.With("component", "metrics_collector"),
		postgres: postgres,
		redis:    rdb,

		storedCompanies: prometheus.NewDesc(
			"sentinel_stored_companies",
			"Number of company records in the record store",
			nil, nil,
		),
		activeSessions: prometheus.NewDesc(
			"sentinel_active_sessions",
			"Number of unexpired dashboard sessions",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.storedCompanies
	ch <- c.activeSessions
}

// Collect implements prometheus.Collector
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c.collectStoredCompanies(ctx, ch)
	c.collectActiveSessions(ctx, ch)
}

func (c *StoreCollector) collectStoredCompanies(ctx context.Context, ch chan<- prometheus.Metric) {
	if c.postgres == nil {
		return
	}

	start := time.Now()
	var count int
	err := c.postgres.GetContext(ctx, &count, "SELECT COUNT(*) FROM companies")
	RecordDBQuery("postgres", "count_companies", time.Since(start), err)
	if err != nil {
		c.log.Warnw("Failed to collect company count", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.storedCompanies, prometheus.GaugeValue, float64(count))
}

func (c *StoreCollector) collectActiveSessions(ctx context.Context, ch chan<- prometheus.Metric) {
	if c.redis == nil {
		return
	}

	var (
		cursor uint64
		count  int
	)
	for {
		keys, next, err := c.redis.Scan(ctx, cursor, "dashboard_session:*", 500).Result()
		if err != nil {
			c.log.Warnw("Failed to collect session count", "error", err)
			return
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	ch <- prometheus.MustNewConstMetric(c.activeSessions, prometheus.GaugeValue, float64(count))
}
