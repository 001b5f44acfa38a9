package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sentinel/internal/domain/company"
	domain "sentinel/internal/domain/dashboard"
	"sentinel/internal/services/catalog"
	"sentinel/internal/stats"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

type memoryRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
	ttls     map[uuid.UUID]time.Duration
	saveErr  error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		sessions: make(map[uuid.UUID]domain.Session),
		ttls:     make(map[uuid.UUID]time.Duration),
	}
}

func (m *memoryRepository) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "session_id=%s", id)
	}
	return &s, nil
}

func (m *memoryRepository) Save(_ context.Context, s *domain.Session, ttl time.Duration) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	m.ttls[s.ID] = ttl
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type stubCatalog struct {
	snapshot *catalog.Snapshot
	status   catalog.Status
}

func (s *stubCatalog) Snapshot() *catalog.Snapshot { return s.snapshot }
func (s *stubCatalog) Status() catalog.Status      { return s.status }

func fixtureCompanies() []company.Company {
	return []company.Company{
		{ID: 1, Name: "Alpha Corp", Ticker: "ALP", OverallScore: 9.2, Base5YearReturn: 0.12, Bear5YearReturn: -0.03, Bull5YearReturn: 0.25,
			FinancialHealthScore: 9, MarketPositionScore: 8, OutlookScore: 9, TrackRecordScore: 8, ProfitabilityScore: 8},
		{ID: 2, Name: "Beta Inc", Ticker: "BET", OverallScore: 7.4, Base5YearReturn: 0.05, Bear5YearReturn: -0.09, Bull5YearReturn: 0.12,
			FinancialHealthScore: 7, MarketPositionScore: 6, OutlookScore: 6, TrackRecordScore: 7, ProfitabilityScore: 7},
		{ID: 3, Name: "Gamma Ltd", Ticker: "GAM", OverallScore: 5.1, Base5YearReturn: -0.01, Bear5YearReturn: -0.3, Bull5YearReturn: 0.05,
			FinancialHealthScore: 4, MarketPositionScore: 5, OutlookScore: 4, TrackRecordScore: 3, ProfitabilityScore: 4},
	}
}

func fixtureSnapshot() *catalog.Snapshot {
	companies := fixtureCompanies()
	return &catalog.Snapshot{
		Companies: companies,
		Aggregate: stats.Compute(companies),
		Trends:    stats.ComputeTrends(companies),
		Version:   1,
	}
}

func newTestService(repo domain.Repository) *Service {
	cat := &stubCatalog{snapshot: fixtureSnapshot(), status: catalog.Status{Count: 3, Version: 1}}
	return NewService(repo, cat, NewRenderer("https://cdn.test/podcasts"), time.Hour, logger.New(zap.NewNop()))
}

func TestServiceCreateSavesInitialState(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)

	session, err := svc.Create(context.Background())
	require.NoError(t, err)

	stored, err := repo.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InitialState(), stored.State)
	assert.Equal(t, time.Hour, repo.ttls[session.ID])
}

func TestServiceDispatchPersistsReducedState(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, session.ID, domain.SetSearch{Text: "beta"})
	require.NoError(t, err)
	updated, err := svc.Dispatch(ctx, session.ID, domain.ToggleComparison{ID: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Actions)

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "beta", stored.State.Search)
	assert.Equal(t, []int64{2}, stored.State.Comparison)
}

func TestServiceDispatchRejectsInvalidAction(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, session.ID, domain.SetMinScore{Value: 11})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	stored, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.State.MinScore)
	assert.Zero(t, stored.Actions)
}

func TestServiceDispatchUnknownSession(t *testing.T) {
	svc := newTestService(newMemoryRepository())

	_, err := svc.Dispatch(context.Background(), uuid.New(), domain.ToggleFilters{})
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestServiceDispatchSaveFailure(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)

	repo.saveErr = errors.ErrUnavailable
	_, err = svc.Dispatch(ctx, session.ID, domain.ToggleFilters{})
	assert.ErrorIs(t, err, errors.ErrUnavailable)
}

func TestServiceRenderUsesSessionState(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, session.ID, domain.SetMinScore{Value: 7})
	require.NoError(t, err)

	view, err := svc.Render(ctx, session.ID)
	require.NoError(t, err)

	require.NotNil(t, view.Companies)
	assert.Equal(t, 2, view.Companies.Total)
	assert.Equal(t, "ALP", view.Companies.Cards[0].Ticker)
	assert.Equal(t, 3, view.Status.Count)
}

func TestServiceRenderUnknownSession(t *testing.T) {
	svc := newTestService(newMemoryRepository())

	_, err := svc.Render(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestServiceDelete(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, session.ID))

	_, err = svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

type breadcrumbTracker struct {
	crumbs []string
}

func (b *breadcrumbTracker) CaptureError(context.Context, error, map[string]string) error { return nil }

func (b *breadcrumbTracker) CaptureMessage(context.Context, string, errors.Level, map[string]string) error {
	return nil
}

func (b *breadcrumbTracker) AddBreadcrumb(_ context.Context, message, _ string, _ errors.Level, _ map[string]interface{}) {
	b.crumbs = append(b.crumbs, message)
}

func (b *breadcrumbTracker) Flush(context.Context) error { return nil }

func TestServiceDispatchLeavesBreadcrumbs(t *testing.T) {
	svc := newTestService(newMemoryRepository())
	tracker := &breadcrumbTracker{}
	svc.SetTracker(tracker)
	ctx := context.Background()

	session, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Dispatch(ctx, session.ID, domain.SetSearch{Text: "alp"})
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, session.ID, domain.SetMinScore{Value: 42})
	require.Error(t, err)

	assert.Equal(t, []string{"set_search"}, tracker.crumbs)
}
