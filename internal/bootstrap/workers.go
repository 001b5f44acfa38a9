package bootstrap

import (
	"sentinel/internal/adapters/config"
	"sentinel/internal/workers"
	catalogworker "sentinel/internal/workers/catalog"
	"sentinel/pkg/logger"
)

// provideWorkers registers the background workers. The refresh worker is disabled
// unless configured, leaving refresh to explicit requests.
func provideWorkers(catalog catalogworker.Refresher, cfg *config.Config, log *logger.Logger) *workers.Scheduler {
	scheduler := workers.NewScheduler(log)

	scheduler.RegisterWorker(catalogworker.NewRefreshWorker(
		catalog,
		cfg.Workers.CatalogRefreshInterval,
		cfg.Workers.CatalogRefreshEnabled,
	))

	log.Infow("✓ Workers registered",
		"catalog_refresh_enabled", cfg.Workers.CatalogRefreshEnabled,
		"catalog_refresh_interval", cfg.Workers.CatalogRefreshInterval,
	)
	return scheduler
}
