package dashboard

import (
	"slices"

	"sentinel/internal/cohorts"
	"sentinel/internal/domain/company"
	"sentinel/internal/insights"
	"sentinel/internal/screener"
)

// MaxComparison is the capacity of the comparison selection
const MaxComparison = 3

// ViewMode controls card density
type ViewMode string

const (
	ViewModeGrid    ViewMode = "grid"
	ViewModeCompact ViewMode = "compact"
)

// ActiveView is the top-level panel
type ActiveView string

const (
	ViewCompanies   ActiveView = "companies"
	ViewPerformance ActiveView = "performance"
	ViewInsights    ActiveView = "insights"
)

// State is every user-adjustable setting of one dashboard session.
// Treat it as a value: Reduce never mutates its input.
type State struct {
	Search        string                 `json:"search"`
	MinScore      float64                `json:"min_score"`
	MetricFilter  *screener.MetricFilter `json:"metric_filter,omitempty"`
	Profile       screener.Profile       `json:"profile"`
	SortKey       company.Field          `json:"sort_key"`
	SortDirection screener.Direction     `json:"sort_direction"`

	ViewMode       ViewMode        `json:"view_mode"`
	DisplayMetrics []company.Field `json:"display_metrics"`
	ShowFilters    bool            `json:"show_filters"`
	ActiveView     ActiveView      `json:"active_view"`
	SelectedCohort cohorts.ID      `json:"selected_cohort,omitempty"`

	SelectedCompanyID *int64  `json:"selected_company_id,omitempty"`
	Comparison        []int64 `json:"comparison"`
	ShowComparison    bool    `json:"show_comparison"`

	InsightCategory     insights.Category  `json:"insight_category"`
	InsightTimeframe    insights.Timeframe `json:"insight_timeframe"`
	ShowAdvancedMetrics bool               `json:"show_advanced_metrics"`
}

// InitialState is the state of a fresh session
func InitialState() State {
	q := screener.DefaultQuery()
	return State{
		Profile:          q.Profile,
		SortKey:          q.Sort.Key,
		SortDirection:    q.Sort.Direction,
		ViewMode:         ViewModeGrid,
		DisplayMetrics:   slices.Clone(company.DefaultDisplayMetrics),
		ActiveView:       ViewCompanies,
		Comparison:       []int64{},
		InsightCategory:  insights.CategoryAll,
		InsightTimeframe: insights.TimeframeAll,
	}
}

// Query derives the screener query from the filter settings
func (s State) Query() screener.Query {
	q := screener.Query{
		Search:   s.Search,
		MinScore: s.MinScore,
		Profile:  s.Profile,
		Sort:     screener.Sort{Key: s.SortKey, Direction: s.SortDirection},
	}
	if s.MetricFilter != nil {
		m := *s.MetricFilter
		q.Metric = &m
	}
	return q
}

// InComparison reports whether id is selected for comparison
func (s State) InComparison(id int64) bool {
	return slices.Contains(s.Comparison, id)
}

// ShowsMetric reports whether f is displayed on company cards
func (s State) ShowsMetric(f company.Field) bool {
	return slices.Contains(s.DisplayMetrics, f)
}

func (s State) clone() State {
	out := s
	out.DisplayMetrics = slices.Clone(s.DisplayMetrics)
	out.Comparison = slices.Clone(s.Comparison)
	if s.MetricFilter != nil {
		m := *s.MetricFilter
		out.MetricFilter = &m
	}
	if s.SelectedCompanyID != nil {
		id := *s.SelectedCompanyID
		out.SelectedCompanyID = &id
	}
	return out
}
