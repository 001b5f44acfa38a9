// Package catalog owns the in-memory company collection: one refresh from the
// record store replaces it whole, and readers work off immutable snapshots.
package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"sentinel/internal/domain/company"
	"sentinel/internal/events"
	"sentinel/internal/metrics"
	"sentinel/internal/stats"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

// Snapshot is one loaded collection with everything derived from it.
// Never mutate a snapshot: it is shared by every reader.
type Snapshot struct {
	Companies []company.Company `json:"companies"`
	Aggregate stats.Aggregate   `json:"aggregate"`
	Trends    stats.Trends      `json:"trends"`
	FetchedAt time.Time         `json:"fetched_at"`
	Version   uint64            `json:"version"`
}

// Status describes the catalog for presentation
type Status struct {
	Loading    bool       `json:"loading"`
	Refreshing bool       `json:"refreshing"`
	LastError  string     `json:"last_error,omitempty"`
	FetchedAt  *time.Time `json:"fetched_at,omitempty"`
	Count      int        `json:"count"`
	Version    uint64     `json:"version"`
}

// EventPublisher receives refresh outcomes; *events.Publisher satisfies it
type EventPublisher interface {
	PublishCatalogRefreshed(ctx context.Context, event events.CatalogRefreshedEvent) error
	PublishCatalogRefreshFailed(ctx context.Context, cause error) error
}

// DefaultFetchTimeout bounds one shared fetch from the record store
const DefaultFetchTimeout = 30 * time.Second

// Service loads the company collection and serves snapshots of it
type Service struct {
	repo         company.Repository
	publisher    EventPublisher
	log          *logger.Logger
	group        singleflight.Group
	fetchTimeout time.Duration

	mu         sync.RWMutex
	snapshot   *Snapshot
	loading    bool
	refreshing bool
	lastErr    error
}

// NewService creates a catalog with an empty snapshot in the loading state
func NewService(repo company.Repository, log *logger.Logger) *Service {
	return &Service{
		repo:         repo,
		log:          log.With("service", "catalog"),
		fetchTimeout: DefaultFetchTimeout,
		snapshot:     newSnapshot(nil, time.Time{}, 0),
		loading:      true,
	}
}

// SetFetchTimeout overrides DefaultFetchTimeout; non-positive values are ignored
func (s *Service) SetFetchTimeout(d time.Duration) {
	if d > 0 {
		s.fetchTimeout = d
	}
}

// SetPublisher enables refresh events
func (s *Service) SetPublisher(p EventPublisher) {
	s.publisher = p
}

// Refresh fetches every record and replaces the collection. On failure the previous
// collection stays in place and the error is returned; there is no retry.
// Concurrent calls share one fetch. The fetch is detached from the caller that
// started it: a cancelled ctx only stops that caller from waiting.
func (s *Service) Refresh(ctx context.Context) error {
	ch := s.group.DoChan("refresh", func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return nil, s.refresh(fetchCtx)
	})

	select {
	case res := <-ch:
		if res.Shared {
			s.log.Debugw("Joined in-flight refresh")
		}
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) refresh(ctx context.Context) error {
	s.mu.Lock()
	s.refreshing = true
	s.mu.Unlock()

	start := time.Now()
	companies, err := s.repo.FetchAll(ctx)
	duration := time.Since(start)

	s.mu.Lock()
	s.refreshing = false
	s.loading = false
	if err != nil {
		s.lastErr = err
	} else {
		s.lastErr = nil
		s.snapshot = newSnapshot(companies, time.Now().UTC(), s.snapshot.Version+1)
	}
	snap := s.snapshot
	s.mu.Unlock()

	metrics.RecordCatalogRefresh(duration, len(companies), err)

	if err != nil {
		err = errors.WithCause(errors.ErrFetchFailed, err)
		s.log.ErrorWithContext(ctx, err, map[string]string{
			"component": "catalog",
			"operation": "refresh",
		})
		if s.publisher != nil {
			_ = s.publisher.PublishCatalogRefreshFailed(ctx, err)
		}
		return err
	}

	s.log.Infow("Catalog refreshed",
		"count", len(snap.Companies),
		"version", snap.Version,
		"duration_ms", duration.Milliseconds(),
	)

	if s.publisher != nil {
		_ = s.publisher.PublishCatalogRefreshed(ctx, events.CatalogRefreshedEvent{
			SnapshotVersion:  snap.Version,
			Count:            snap.Aggregate.Count,
			MeanOverallScore: snap.Aggregate.MeanOverallScore,
			DurationMs:       duration.Milliseconds(),
		})
	}

	return nil
}

// Snapshot returns the current collection
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Status returns the loading flags and the outcome of the last refresh
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Loading:    s.loading,
		Refreshing: s.refreshing,
		Count:      len(s.snapshot.Companies),
		Version:    s.snapshot.Version,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	if !s.snapshot.FetchedAt.IsZero() {
		fetched := s.snapshot.FetchedAt
		st.FetchedAt = &fetched
	}
	return st
}

func newSnapshot(companies []company.Company, fetchedAt time.Time, version uint64) *Snapshot {
	if companies == nil {
		companies = []company.Company{}
	}
	return &Snapshot{
		Companies: companies,
		Aggregate: stats.Compute(companies),
		Trends:    stats.ComputeTrends(companies),
		FetchedAt: fetchedAt,
		Version:   version,
	}
}
