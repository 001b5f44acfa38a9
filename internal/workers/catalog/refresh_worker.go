package catalog

import (
	"context"
	"time"

	"sentinel/internal/workers"
	"sentinel/pkg/errors"
)

// Refresher reloads the company catalog
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshWorker periodically reloads the catalog snapshot from storage
type RefreshWorker struct {
	*workers.BaseWorker
	catalog Refresher
}

// NewRefreshWorker creates a catalog refresh worker
func NewRefreshWorker(catalog Refresher, interval time.Duration, enabled bool) *RefreshWorker {
	return &RefreshWorker{
		BaseWorker: workers.NewBaseWorker("catalog_refresh", interval, enabled),
		catalog:    catalog,
	}
}

// Run performs one refresh. A failed refresh keeps the previous snapshot, so the
// error is only returned for health accounting.
func (w *RefreshWorker) Run(ctx context.Context) error {
	if err := w.catalog.Refresh(ctx); err != nil {
		return errors.Wrap(err, "catalog refresh")
	}
	return nil
}

var _ workers.TrackedWorker = (*RefreshWorker)(nil)
