package dashboard

import (
	"sentinel/internal/cohorts"
	"sentinel/internal/domain/company"
	"sentinel/internal/insights"
	"sentinel/internal/screener"
)

// Action is one user interaction. Reduce turns (State, Action) into the next State.
type Action interface {
	Type() string
}

type SetSearch struct{ Text string }
type SetMinScore struct{ Value float64 }
type SetMetricFilter struct {
	Field company.Field
	Min   float64
}
type ClearMetricFilter struct{}
type SetProfile struct{ Profile screener.Profile }
type SetSortKey struct{ Key company.Field }
type ToggleSortDirection struct{}
type SetViewMode struct{ Mode ViewMode }
type ToggleDisplayMetric struct{ Field company.Field }
type ToggleFilters struct{}
type SetActiveView struct{ View ActiveView }
type SelectCohort struct{ Cohort cohorts.ID }
type SelectCompany struct{ ID int64 }
type CloseDetails struct{}

// ToggleComparison adds ID when absent and under capacity, removes it when present
type ToggleComparison struct{ ID int64 }

// CompareFromDetails toggles the company shown in the detail view and closes it
type CompareFromDetails struct{}

type ShowComparison struct{}
type HideComparison struct{}
type SetInsightCategory struct{ Category insights.Category }
type SetInsightTimeframe struct{ Timeframe insights.Timeframe }
type ToggleAdvancedMetrics struct{}
type Reset struct{}

func (SetSearch) Type() string             { return "set_search" }
func (SetMinScore) Type() string           { return "set_min_score" }
func (SetMetricFilter) Type() string       { return "set_metric_filter" }
func (ClearMetricFilter) Type() string     { return "clear_metric_filter" }
func (SetProfile) Type() string            { return "set_profile" }
func (SetSortKey) Type() string            { return "set_sort_key" }
func (ToggleSortDirection) Type() string   { return "toggle_sort_direction" }
func (SetViewMode) Type() string           { return "set_view_mode" }
func (ToggleDisplayMetric) Type() string   { return "toggle_display_metric" }
func (ToggleFilters) Type() string         { return "toggle_filters" }
func (SetActiveView) Type() string         { return "set_active_view" }
func (SelectCohort) Type() string          { return "select_cohort" }
func (SelectCompany) Type() string         { return "select_company" }
func (CloseDetails) Type() string          { return "close_details" }
func (ToggleComparison) Type() string      { return "toggle_comparison" }
func (CompareFromDetails) Type() string    { return "compare_from_details" }
func (ShowComparison) Type() string        { return "show_comparison" }
func (HideComparison) Type() string        { return "hide_comparison" }
func (SetInsightCategory) Type() string    { return "set_insight_category" }
func (SetInsightTimeframe) Type() string   { return "set_insight_timeframe" }
func (ToggleAdvancedMetrics) Type() string { return "toggle_advanced_metrics" }
func (Reset) Type() string                 { return "reset" }
