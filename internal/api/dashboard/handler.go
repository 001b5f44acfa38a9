// Package dashboard serves the company dashboard over HTTP: stateless screener
// endpoints over the current catalog plus per-client sessions.
package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"sentinel/internal/cohorts"
	"sentinel/internal/domain/company"
	domain "sentinel/internal/domain/dashboard"
	"sentinel/internal/insights"
	"sentinel/internal/screener"
	"sentinel/internal/services/catalog"
	dashboardsvc "sentinel/internal/services/dashboard"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
	"sentinel/pkg/relay"
)

const maxActionBody = 64 << 10

// Catalog is the catalog service as the handler uses it
type Catalog interface {
	Refresh(ctx context.Context) error
	Snapshot() *catalog.Snapshot
	Status() catalog.Status
}

// Sessions is the dashboard session service as the handler uses it
type Sessions interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Dispatch(ctx context.Context, id uuid.UUID, action domain.Action) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Render(ctx context.Context, id uuid.UUID) (*dashboardsvc.View, error)
}

// Handler serves the dashboard API
type Handler struct {
	catalog  Catalog
	sessions Sessions
	renderer *dashboardsvc.Renderer
	limiter  *rate.Limiter
	log      *logger.Logger
}

// NewHandler creates a handler. limiter throttles POST /api/refresh.
func NewHandler(cat Catalog, sessions Sessions, renderer *dashboardsvc.Renderer, limiter *rate.Limiter, log *logger.Logger) *Handler {
	return &Handler{
		catalog:  cat,
		sessions: sessions,
		renderer: renderer,
		limiter:  limiter,
		log:      log.With("component", "dashboard_api"),
	}
}

// Routes maps method-qualified patterns to handlers
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"POST /api/refresh":               h.HandleRefresh,
		"GET /api/status":                 h.HandleStatus,
		"GET /api/filters":                h.HandleFilters,
		"GET /api/companies":              h.HandleCompanies,
		"GET /api/companies/{id}":         h.HandleCompany,
		"GET /api/stats":                  h.HandleStats,
		"GET /api/cohorts":                h.HandleCohorts,
		"GET /api/cohorts/{id}":           h.HandleCohort,
		"GET /api/insights":               h.HandleInsights,
		"GET /api/compare":                h.HandleCompare,
		"POST /api/sessions":              h.HandleCreateSession,
		"GET /api/sessions/{id}":          h.HandleGetSession,
		"DELETE /api/sessions/{id}":       h.HandleDeleteSession,
		"POST /api/sessions/{id}/actions": h.HandleDispatch,
		"GET /api/sessions/{id}/view":     h.HandleView,
	}
}

// RefreshResponse reports the catalog after a refresh attempt
type RefreshResponse struct {
	Status catalog.Status `json:"status"`
	Error  string         `json:"error,omitempty"`
}

// HandleRefresh reloads the catalog from the record store
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow() {
		h.writeError(w, r, errors.Wrap(errors.ErrRateLimitExceeded, "refresh"))
		return
	}

	if err := h.catalog.Refresh(r.Context()); err != nil {
		writeJSON(w, StatusCode(err), RefreshResponse{Status: h.catalog.Status(), Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{Status: h.catalog.Status()})
}

// HandleStatus reports the catalog loading state
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Status())
}

// HandleFilters lists the filter controls
func (h *Handler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, screener.FilterDefinitions())
}

// CompaniesResponse is one page of screened companies
type CompaniesResponse struct {
	Query screener.Query                              `json:"query"`
	Page  *relay.Connection[dashboardsvc.CompanyCard] `json:"page"`
}

// HandleCompanies runs the screener over the catalog
func (h *Handler) HandleCompanies(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	q, err := screener.ParseQuery(values)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	params, err := parsePage(values)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	display, err := parseMetrics(values.Get("metrics"), company.DefaultDisplayMetrics)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	all := h.catalog.Snapshot().Companies
	if raw := values.Get("cohort"); raw != "" {
		scoped, ok := cohorts.Filter(all, cohorts.ID(raw))
		if !ok {
			h.writeError(w, r, errors.NewValidationError("cohort", "unknown cohort", raw))
			return
		}
		all = scoped
	}

	shown := screener.Apply(all, q)
	cards := make([]dashboardsvc.CompanyCard, len(shown))
	for i, c := range shown {
		cards[i] = h.renderer.Card(c, display, false)
	}

	page, err := relay.Paginate(cards, params)
	if err != nil {
		h.writeError(w, r, errors.NewValidationError("after", err.Error(), values.Get("after")))
		return
	}

	writeJSON(w, http.StatusOK, CompaniesResponse{Query: q, Page: page})
}

// HandleCompany returns the detail view of one company
func (h *Handler) HandleCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, r, errors.NewValidationError("id", "not an integer", r.PathValue("id")))
		return
	}

	c, ok := company.FindByID(h.catalog.Snapshot().Companies, id)
	if !ok {
		h.writeError(w, r, errors.Wrapf(errors.ErrNotFound, "company %d", id))
		return
	}

	writeJSON(w, http.StatusOK, h.renderer.Detail(c, false))
}

// HandleStats returns the aggregate snapshot with trends and cohort counts
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.renderer.Performance(h.catalog.Snapshot()))
}

// CohortsResponse lists every cohort with the market summary
type CohortsResponse struct {
	Cohorts []relay.Scope   `json:"cohorts"`
	Summary cohorts.Summary `json:"summary"`
}

// HandleCohorts returns cohort counts
func (h *Handler) HandleCohorts(w http.ResponseWriter, r *http.Request) {
	all := h.catalog.Snapshot().Companies
	writeJSON(w, http.StatusOK, CohortsResponse{
		Cohorts: cohorts.Counts(all),
		Summary: cohorts.SummaryOf(all),
	})
}

// CohortResponse lists the members of one cohort
type CohortResponse struct {
	ID      cohorts.ID                 `json:"id"`
	Count   int                        `json:"count"`
	Members []dashboardsvc.CompanyCard `json:"members"`
}

// HandleCohort returns the members of one cohort
func (h *Handler) HandleCohort(w http.ResponseWriter, r *http.Request) {
	id := cohorts.ID(r.PathValue("id"))
	if !id.Valid() {
		h.writeError(w, r, errors.Wrapf(errors.ErrNotFound, "cohort %s", id))
		return
	}

	members, _ := cohorts.Filter(h.catalog.Snapshot().Companies, id)
	cards := make([]dashboardsvc.CompanyCard, len(members))
	for i, c := range members {
		cards[i] = h.renderer.Card(c, company.DefaultDisplayMetrics, false)
	}

	writeJSON(w, http.StatusOK, CohortResponse{ID: id, Count: len(cards), Members: cards})
}

// HandleInsights returns filtered insights, market metrics and the summary
func (h *Handler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	category := insights.Category(values.Get("category"))
	if category == "" {
		category = insights.CategoryAll
	}
	if !category.Valid() {
		h.writeError(w, r, errors.NewValidationError("category", "unknown category", category))
		return
	}

	timeframe := insights.Timeframe(values.Get("timeframe"))
	if timeframe == "" {
		timeframe = insights.TimeframeAll
	}
	if !timeframe.Valid() {
		h.writeError(w, r, errors.NewValidationError("timeframe", "unknown timeframe", timeframe))
		return
	}

	writeJSON(w, http.StatusOK, h.renderer.Insights(h.catalog.Snapshot().Companies, category, timeframe, true))
}

// HandleCompare lays up to three companies side by side
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	ids, err := parseIDs(values.Get("ids"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	display, err := parseMetrics(values.Get("metrics"), company.DefaultDisplayMetrics)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.renderer.Comparison(h.catalog.Snapshot().Companies, ids, display))
}

// HandleCreateSession starts a dashboard session
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Create(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// HandleGetSession returns a session with its state
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	session, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// HandleDeleteSession ends a session
func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.sessions.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDispatch applies one JSON-encoded action to a session
func (h *Handler) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxActionBody))
	if err != nil {
		h.writeError(w, r, errors.Wrap(errors.ErrInvalidInput, "read body"))
		return
	}

	action, err := domain.DecodeAction(body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	session, err := h.sessions.Dispatch(r.Context(), id, action)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// HandleView renders a session against the current catalog
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.sessions.Render(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func sessionID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.NewValidationError("id", "not a session id", raw)
	}
	return id, nil
}

// parsePage reads limit plus either an offset or an after cursor
func parsePage(values url.Values) (relay.PaginationParams, error) {
	var params relay.PaginationParams

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return params, errors.NewValidationError("limit", "must be a non-negative integer", raw)
		}
		params.First = &limit
	}

	if raw := values.Get("after"); raw != "" {
		params.After = &raw
	} else if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return params, errors.NewValidationError("offset", "must be a non-negative integer", raw)
		}
		if offset > 0 {
			cursor := relay.EncodeCursor(offset - 1)
			params.After = &cursor
		}
	}

	return params, nil
}

// parseIDs reads a comma-separated list of at most MaxComparison company IDs
func parseIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, errors.NewValidationError("ids", "required", raw)
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, errors.NewValidationError("ids", "not an integer", p)
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	if len(ids) > domain.MaxComparison {
		return nil, errors.NewValidationError("ids", "at most 3 companies can be compared", raw)
	}
	return ids, nil
}

// parseMetrics reads a comma-separated list of display metrics, falling back to def
func parseMetrics(raw string, def []company.Field) ([]company.Field, error) {
	if raw == "" {
		return def, nil
	}

	var fields []company.Field
	for _, p := range strings.Split(raw, ",") {
		f, err := company.ParseNumericField(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.NewValidationError("metrics", err.Error(), p)
		}
		fields = append(fields, f)
	}
	return fields, nil
}
