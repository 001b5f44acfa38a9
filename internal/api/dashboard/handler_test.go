package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"sentinel/internal/domain/company"
	domain "sentinel/internal/domain/dashboard"
	"sentinel/internal/services/catalog"
	dashboardsvc "sentinel/internal/services/dashboard"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

type stubCatalog struct {
	mu        sync.Mutex
	companies []company.Company
	refreshes int
	err       error
}

func (s *stubCatalog) Refresh(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
	if s.err != nil {
		return errors.WithCause(errors.ErrFetchFailed, s.err)
	}
	return nil
}

func (s *stubCatalog) Snapshot() *catalog.Snapshot {
	return &catalog.Snapshot{Companies: s.companies, Version: 1}
}

func (s *stubCatalog) Status() catalog.Status {
	return catalog.Status{Count: len(s.companies), Version: 1}
}

type memoryRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
}

func (m *memoryRepository) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memoryRepository) Save(_ context.Context, s *domain.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func testCompanies() []company.Company {
	return []company.Company{
		{ID: 1, Name: "Alpha Corp", Ticker: "ALP", OverallScore: 9.2, Bear5YearReturn: -0.03, Bull5YearReturn: 0.25,
			FinancialHealthScore: 9, MarketPositionScore: 8, OutlookScore: 9, TrackRecordScore: 8},
		{ID: 2, Name: "Beta Inc", Ticker: "BET", OverallScore: 7.4, Bear5YearReturn: -0.09, Bull5YearReturn: 0.12,
			FinancialHealthScore: 7, MarketPositionScore: 6},
		{ID: 3, Name: "Gamma Ltd", Ticker: "GAM", OverallScore: 5.1, Bear5YearReturn: -0.3, Bull5YearReturn: 0.05,
			FinancialHealthScore: 4, MarketPositionScore: 5},
	}
}

type testServer struct {
	mux     *http.ServeMux
	catalog *stubCatalog
}

func newTestServer(t *testing.T, limiter *rate.Limiter) *testServer {
	t.Helper()

	log := logger.New(zap.NewNop())
	cat := &stubCatalog{companies: testCompanies()}
	renderer := dashboardsvc.NewRenderer("https://cdn.test/podcasts")
	sessions := dashboardsvc.NewService(&memoryRepository{sessions: map[uuid.UUID]domain.Session{}}, cat, renderer, time.Hour, log)

	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	mux := http.NewServeMux()
	for pattern, fn := range NewHandler(cat, sessions, renderer, limiter, log).Routes() {
		mux.HandleFunc(pattern, fn)
	}
	return &testServer{mux: mux, catalog: cat}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHandleCompaniesAppliesQuery(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/api/companies?min_score=7&sort=ticker&order=asc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Page struct {
			Edges []struct {
				Node dashboardsvc.CompanyCard `json:"node"`
			} `json:"edges"`
			TotalCount int `json:"total_count"`
		} `json:"page"`
	}
	decodeBody(t, rec, &resp)

	assert.Equal(t, 2, resp.Page.TotalCount)
	require.Len(t, resp.Page.Edges, 2)
	assert.Equal(t, "ALP", resp.Page.Edges[0].Node.Ticker)
	assert.Equal(t, "BET", resp.Page.Edges[1].Node.Ticker)
}

func TestHandleCompaniesPaging(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/api/companies?limit=1&offset=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Page struct {
			Edges []struct {
				Node dashboardsvc.CompanyCard `json:"node"`
			} `json:"edges"`
			PageInfo struct {
				HasNextPage     bool `json:"has_next_page"`
				HasPreviousPage bool `json:"has_previous_page"`
			} `json:"page_info"`
		} `json:"page"`
	}
	decodeBody(t, rec, &resp)

	require.Len(t, resp.Page.Edges, 1)
	assert.Equal(t, "BET", resp.Page.Edges[0].Node.Ticker)
	assert.True(t, resp.Page.PageInfo.HasNextPage)
	assert.True(t, resp.Page.PageInfo.HasPreviousPage)
}

func TestHandleCompaniesRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name  string
		query string
		field string
	}{
		{"min score out of range", "min_score=11", ""},
		{"min score not a number", "min_score=abc", "min_score"},
		{"unknown metric", "metric=nope", "metric"},
		{"text metric", "metric=name", "metric"},
		{"unknown profile", "profile=wild", ""},
		{"unknown cohort", "cohort=unicorns", "cohort"},
		{"negative limit", "limit=-1", "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodGet, "/api/companies?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			if tt.field != "" {
				var body ErrorResponse
				decodeBody(t, rec, &body)
				assert.Equal(t, tt.field, body.Field)
			}
		})
	}
}

func TestHandleCompany(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/api/companies/2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var detail dashboardsvc.Detail
	decodeBody(t, rec, &detail)
	assert.Equal(t, "BET", detail.Ticker)
	assert.Equal(t, "https://cdn.test/podcasts/bet.mp3", detail.NarrationURL)
	assert.Len(t, detail.SubScores, len(company.SubScores))

	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/companies/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/companies/abc", "").Code)
}

func TestHandleCohorts(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/api/cohorts/risky_candidates", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CohortResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "GAM", resp.Members[0].Ticker)

	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, "/api/cohorts/unicorns", "").Code)
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/api/cohorts", "").Code)
}

func TestHandleInsightsValidatesFilters(t *testing.T) {
	srv := newTestServer(t, nil)

	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/api/insights?category=risk&timeframe=short", "").Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/insights?category=gossip", "").Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/insights?timeframe=decade", "").Code)
}

func TestHandleCompare(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/api/compare?ids=3,1,77", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dashboardsvc.ComparisonView
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Companies, 2)
	assert.Equal(t, []int64{77}, resp.Missing)

	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/compare?ids=1,2,3,4", "").Code)
	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/compare", "").Code)
}

func TestHandleCompareCollapsesRepeatedIDs(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodGet, "/api/compare?ids=1,1,1,3,1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dashboardsvc.ComparisonView
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Companies, 2)
	assert.Empty(t, resp.Missing)
}

func TestHandleRefresh(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/api/refresh", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, srv.catalog.refreshes)

	srv.catalog.err = errors.New("connection refused")
	rec = srv.do(t, http.MethodPost, "/api/refresh", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp RefreshResponse
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.Error, "connection refused")
	assert.Equal(t, 3, resp.Status.Count)
}

func TestHandleRefreshRateLimited(t *testing.T) {
	srv := newTestServer(t, rate.NewLimiter(rate.Every(time.Hour), 1))

	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodPost, "/api/refresh", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, srv.do(t, http.MethodPost, "/api/refresh", "").Code)
	assert.Equal(t, 1, srv.catalog.refreshes)
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var session domain.Session
	decodeBody(t, rec, &session)
	base := "/api/sessions/" + session.ID.String()

	rec = srv.do(t, http.MethodPost, base+"/actions", `{"type":"set_profile","profile":"resilient"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, base+"/actions", `{"type":"select_company","id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, base+"/view", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view dashboardsvc.View
	decodeBody(t, rec, &view)
	require.NotNil(t, view.Companies)
	assert.Equal(t, 1, view.Companies.Total)
	require.NotNil(t, view.Detail)
	assert.Equal(t, "ALP", view.Detail.Ticker)

	rec = srv.do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &session)
	assert.Equal(t, 2, session.Actions)

	assert.Equal(t, http.StatusNoContent, srv.do(t, http.MethodDelete, base, "").Code)
	assert.Equal(t, http.StatusNotFound, srv.do(t, http.MethodGet, base+"/view", "").Code)
}

func TestHandleDispatchRejectsBadActions(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, http.MethodPost, "/api/sessions", "")
	var session domain.Session
	decodeBody(t, rec, &session)
	base := "/api/sessions/" + session.ID.String()

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"type":`, http.StatusBadRequest},
		{"unknown type", `{"type":"fly"}`, http.StatusBadRequest},
		{"invalid view", `{"type":"set_active_view","view":"map"}`, http.StatusBadRequest},
		{"missing id", `{"type":"toggle_comparison"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, srv.do(t, http.MethodPost, base+"/actions", tt.body).Code)
		})
	}

	assert.Equal(t, http.StatusBadRequest, srv.do(t, http.MethodGet, "/api/sessions/not-a-uuid", "").Code)
	assert.Equal(t, http.StatusNotFound,
		srv.do(t, http.MethodPost, "/api/sessions/"+uuid.NewString()+"/actions", `{"type":"reset"}`).Code)
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{errors.NewValidationError("x", "bad", 1), http.StatusBadRequest},
		{errors.Wrap(errors.ErrUnknownAction, "fly"), http.StatusBadRequest},
		{errors.Wrap(errors.ErrNotFound, "company"), http.StatusNotFound},
		{errors.ErrSessionNotFound, http.StatusNotFound},
		{errors.ErrRateLimitExceeded, http.StatusTooManyRequests},
		{errors.ErrFetchFailed, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.code, StatusCode(tt.err), tt.err.Error())
	}
}
