package dashboard

import (
	"slices"

	"sentinel/internal/cohorts"
	"sentinel/internal/screener"
)

// Reduce returns the state that follows s after a. It is pure: s is never
// modified and an unknown action returns s unchanged.
func Reduce(s State, a Action) State {
	next := s.clone()

	switch act := a.(type) {
	case SetSearch:
		next.Search = act.Text
	case SetMinScore:
		next.MinScore = act.Value
	case SetMetricFilter:
		next.MetricFilter = &screener.MetricFilter{Field: act.Field, Min: act.Min}
	case ClearMetricFilter:
		next.MetricFilter = nil
	case SetProfile:
		next.Profile = act.Profile
	case SetSortKey:
		next.SortKey = act.Key
	case ToggleSortDirection:
		next.SortDirection = next.SortDirection.Toggle()
	case SetViewMode:
		next.ViewMode = act.Mode
	case ToggleDisplayMetric:
		if i := slices.Index(next.DisplayMetrics, act.Field); i >= 0 {
			next.DisplayMetrics = slices.Delete(next.DisplayMetrics, i, i+1)
		} else {
			next.DisplayMetrics = append(next.DisplayMetrics, act.Field)
		}
	case ToggleFilters:
		next.ShowFilters = !next.ShowFilters
	case SetActiveView:
		next.ActiveView = act.View
	case SelectCohort:
		next.SelectedCohort = act.Cohort
		if act.Cohort == cohorts.All {
			next.SelectedCohort = ""
		}
	case SelectCompany:
		id := act.ID
		next.SelectedCompanyID = &id
	case CloseDetails:
		next.SelectedCompanyID = nil
	case ToggleComparison:
		next.Comparison = toggleComparison(next.Comparison, act.ID)
	case CompareFromDetails:
		if next.SelectedCompanyID != nil {
			next.Comparison = toggleComparison(next.Comparison, *next.SelectedCompanyID)
			next.SelectedCompanyID = nil
		}
	case ShowComparison:
		next.ShowComparison = true
	case HideComparison:
		next.ShowComparison = false
	case SetInsightCategory:
		next.InsightCategory = act.Category
	case SetInsightTimeframe:
		next.InsightTimeframe = act.Timeframe
	case ToggleAdvancedMetrics:
		next.ShowAdvancedMetrics = !next.ShowAdvancedMetrics
	case Reset:
		return InitialState()
	default:
		return s
	}

	return next
}

// toggleComparison removes id if present, appends it if there is room,
// and otherwise drops the request.
func toggleComparison(selection []int64, id int64) []int64 {
	if i := slices.Index(selection, id); i >= 0 {
		return slices.Delete(selection, i, i+1)
	}
	if len(selection) >= MaxComparison {
		return selection
	}
	return append(selection, id)
}
