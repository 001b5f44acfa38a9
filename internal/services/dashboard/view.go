package dashboard

import (
	"sentinel/internal/cohorts"
	"sentinel/internal/domain/company"
	domain "sentinel/internal/domain/dashboard"
	"sentinel/internal/insights"
	"sentinel/internal/screener"
	"sentinel/internal/services/catalog"
	"sentinel/internal/stats"
	"sentinel/pkg/relay"
)

// MetricValue is one score with its display label and band
type MetricValue struct {
	Field company.Field `json:"field"`
	Label string        `json:"label"`
	Value float64       `json:"value"`
	Band  stats.Band    `json:"band"`
}

// Returns groups the three 5-year scenarios
type Returns struct {
	Base float64 `json:"base"`
	Bear float64 `json:"bear"`
	Bull float64 `json:"bull"`
}

// CompanyCard is one company as shown in lists
type CompanyCard struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Ticker       string        `json:"ticker"`
	OverallScore float64       `json:"overall_score"`
	ScoreBand    stats.Band    `json:"score_band"`
	Returns      Returns       `json:"returns"`
	Metrics      []MetricValue `json:"metrics"`
	Cohorts      []cohorts.ID  `json:"cohorts"`
	NarrationURL string        `json:"narration_url"`
	InComparison bool          `json:"in_comparison"`
}

// Detail is the full record of the selected company
type Detail struct {
	CompanyCard
	SubScores  []MetricValue `json:"sub_scores"`
	PodcastURL *string       `json:"podcast_url,omitempty"`
}

// ComparisonRow is one metric across the compared companies
type ComparisonRow struct {
	Field  company.Field `json:"field"`
	Label  string        `json:"label"`
	Values []float64     `json:"values"`
	// Best is the column index of the highest value, the first on ties
	Best int `json:"best"`
}

// ComparisonView lays the selected companies side by side
type ComparisonView struct {
	Companies []CompanyCard   `json:"companies"`
	Rows      []ComparisonRow `json:"rows"`
	// Missing lists selected IDs that are no longer in the collection
	Missing []int64 `json:"missing,omitempty"`
}

// CompaniesPanel is the filtered company list
type CompaniesPanel struct {
	Total           int             `json:"total"`
	ViewMode        domain.ViewMode `json:"view_mode"`
	Cohort          cohorts.ID      `json:"cohort,omitempty"`
	Cards           []CompanyCard   `json:"cards"`
	ComparisonCount int             `json:"comparison_count"`
}

// PerformancePanel is the aggregate snapshot with trends and cohort counts
type PerformancePanel struct {
	Aggregate stats.Aggregate `json:"aggregate"`
	Trends    stats.Trends    `json:"trends"`
	Cohorts   []relay.Scope   `json:"cohorts"`
}

// InsightsPanel holds the filtered insight cards
type InsightsPanel struct {
	Category  insights.Category       `json:"category"`
	Timeframe insights.Timeframe      `json:"timeframe"`
	Insights  []insights.Insight      `json:"insights"`
	Summary   cohorts.Summary         `json:"summary"`
	Metrics   *insights.MarketMetrics `json:"metrics,omitempty"`
}

// View is everything a client needs to draw one session
type View struct {
	Status      catalog.Status    `json:"status"`
	State       domain.State      `json:"state"`
	ActiveView  domain.ActiveView `json:"active_view"`
	Companies   *CompaniesPanel   `json:"companies,omitempty"`
	Performance *PerformancePanel `json:"performance,omitempty"`
	Insights    *InsightsPanel    `json:"insights,omitempty"`
	Detail      *Detail           `json:"detail,omitempty"`
	Comparison  *ComparisonView   `json:"comparison,omitempty"`
}

// Renderer turns snapshots into view models
type Renderer struct {
	narrationBaseURL string
}

// NewRenderer creates a renderer; an empty base URL uses the default narration host
func NewRenderer(narrationBaseURL string) *Renderer {
	if narrationBaseURL == "" {
		narrationBaseURL = company.DefaultNarrationBaseURL
	}
	return &Renderer{narrationBaseURL: narrationBaseURL}
}

// Render builds the view of state over snap. Only the active panel is filled.
func (r *Renderer) Render(state domain.State, snap *catalog.Snapshot, status catalog.Status) View {
	v := View{
		Status:     status,
		State:      state,
		ActiveView: state.ActiveView,
	}

	switch state.ActiveView {
	case domain.ViewPerformance:
		v.Performance = r.Performance(snap)
	case domain.ViewInsights:
		v.Insights = r.Insights(snap.Companies, state.InsightCategory, state.InsightTimeframe, state.ShowAdvancedMetrics)
	default:
		v.Companies = r.Companies(state, snap.Companies)
	}

	if state.SelectedCompanyID != nil {
		if c, ok := company.FindByID(snap.Companies, *state.SelectedCompanyID); ok {
			d := r.Detail(c, state.InComparison(c.ID))
			v.Detail = &d
		}
	}

	if state.ShowComparison && len(state.Comparison) > 0 {
		v.Comparison = r.Comparison(snap.Companies, state.Comparison, state.DisplayMetrics)
	}

	return v
}

// Companies applies the session's cohort and screener query
func (r *Renderer) Companies(state domain.State, all []company.Company) *CompaniesPanel {
	scoped, ok := cohorts.Filter(all, state.SelectedCohort)
	if !ok {
		scoped = all
	}
	shown := screener.Apply(scoped, state.Query())

	cards := make([]CompanyCard, len(shown))
	for i, c := range shown {
		cards[i] = r.Card(c, state.DisplayMetrics, state.InComparison(c.ID))
	}

	return &CompaniesPanel{
		Total:           len(shown),
		ViewMode:        state.ViewMode,
		Cohort:          state.SelectedCohort,
		Cards:           cards,
		ComparisonCount: len(state.Comparison),
	}
}

// Performance builds the stats panel
func (r *Renderer) Performance(snap *catalog.Snapshot) *PerformancePanel {
	return &PerformancePanel{
		Aggregate: snap.Aggregate,
		Trends:    snap.Trends,
		Cohorts:   cohorts.Counts(snap.Companies),
	}
}

// Insights builds the insight panel; market metrics are included only when advanced is set
func (r *Renderer) Insights(all []company.Company, category insights.Category, timeframe insights.Timeframe, advanced bool) *InsightsPanel {
	p := &InsightsPanel{
		Category:  category,
		Timeframe: timeframe,
		Insights:  insights.Filter(insights.Generate(all), category, timeframe),
		Summary:   cohorts.SummaryOf(all),
	}
	if advanced {
		p.Metrics = insights.ComputeMetrics(all)
	}
	return p
}

// Card renders one company with the given display metrics
func (r *Renderer) Card(c company.Company, display []company.Field, inComparison bool) CompanyCard {
	return CompanyCard{
		ID:           c.ID,
		Name:         c.Name,
		Ticker:       c.Ticker,
		OverallScore: c.OverallScore,
		ScoreBand:    stats.ScoreBand(c.OverallScore),
		Returns:      Returns{Base: c.Base5YearReturn, Bear: c.Bear5YearReturn, Bull: c.Bull5YearReturn},
		Metrics:      metricValues(c, display),
		Cohorts:      cohorts.Tags(c),
		NarrationURL: company.NarrationURL(r.narrationBaseURL, c.Ticker),
		InComparison: inComparison,
	}
}

// Detail renders every sub-score of one company
func (r *Renderer) Detail(c company.Company, inComparison bool) Detail {
	return Detail{
		CompanyCard: r.Card(c, company.DefaultDisplayMetrics, inComparison),
		SubScores:   metricValues(c, company.SubScores),
		PodcastURL:  c.PodcastURL,
	}
}

// Comparison resolves ids against all. IDs that are gone are reported as missing.
// An empty metric list compares the overall score and the three returns only.
func (r *Renderer) Comparison(all []company.Company, ids []int64, metrics []company.Field) *ComparisonView {
	v := &ComparisonView{Companies: []CompanyCard{}}

	resolved := make([]company.Company, 0, len(ids))
	for _, id := range ids {
		c, ok := company.FindByID(all, id)
		if !ok {
			v.Missing = append(v.Missing, id)
			continue
		}
		resolved = append(resolved, c)
		v.Companies = append(v.Companies, r.Card(c, metrics, true))
	}

	fields := append([]company.Field{
		company.FieldOverallScore,
		company.FieldBaseReturn,
		company.FieldBearReturn,
		company.FieldBullReturn,
	}, metrics...)

	v.Rows = make([]ComparisonRow, 0, len(fields))
	for _, f := range fields {
		row := ComparisonRow{Field: f, Label: f.Label(), Values: make([]float64, len(resolved))}
		for i, c := range resolved {
			row.Values[i], _ = f.Numeric(c)
			if row.Values[i] > row.Values[row.Best] {
				row.Best = i
			}
		}
		v.Rows = append(v.Rows, row)
	}

	return v
}

func metricValues(c company.Company, fields []company.Field) []MetricValue {
	out := make([]MetricValue, 0, len(fields))
	for _, f := range fields {
		value, ok := f.Numeric(c)
		if !ok {
			continue
		}
		out = append(out, MetricValue{
			Field: f,
			Label: f.Label(),
			Value: value,
			Band:  stats.MetricBand(value),
		})
	}
	return out
}
