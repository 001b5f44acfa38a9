package dashboard

import (
	"encoding/json"

	"sentinel/internal/cohorts"
	"sentinel/internal/domain/company"
	"sentinel/internal/insights"
	"sentinel/internal/screener"
	"sentinel/pkg/errors"
)

// ActionRequest is the wire form of an action: a type tag plus the payload
// fields that type uses.
type ActionRequest struct {
	Type      string   `json:"type"`
	Text      string   `json:"text,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	Field     string   `json:"field,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Profile   string   `json:"profile,omitempty"`
	Key       string   `json:"key,omitempty"`
	Mode      string   `json:"mode,omitempty"`
	View      string   `json:"view,omitempty"`
	Cohort    string   `json:"cohort,omitempty"`
	ID        *int64   `json:"id,omitempty"`
	Category  string   `json:"category,omitempty"`
	Timeframe string   `json:"timeframe,omitempty"`
}

// DecodeAction parses and validates one JSON action
func DecodeAction(data []byte) (Action, error) {
	var req ActionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "decode action: "+err.Error())
	}
	return req.Action()
}

// Action converts the request into a validated Action
func (r ActionRequest) Action() (Action, error) {
	var a Action

	switch r.Type {
	case "set_search":
		a = SetSearch{Text: r.Text}
	case "set_min_score":
		if r.Value == nil {
			return nil, errors.NewValidationError("value", "required", nil)
		}
		a = SetMinScore{Value: *r.Value}
	case "set_metric_filter":
		min := 0.0
		if r.Min != nil {
			min = *r.Min
		}
		a = SetMetricFilter{Field: company.Field(r.Field), Min: min}
	case "clear_metric_filter":
		a = ClearMetricFilter{}
	case "set_profile":
		a = SetProfile{Profile: screener.Profile(r.Profile)}
	case "set_sort_key":
		a = SetSortKey{Key: company.Field(r.Key)}
	case "toggle_sort_direction":
		a = ToggleSortDirection{}
	case "set_view_mode":
		a = SetViewMode{Mode: ViewMode(r.Mode)}
	case "toggle_display_metric":
		a = ToggleDisplayMetric{Field: company.Field(r.Field)}
	case "toggle_filters":
		a = ToggleFilters{}
	case "set_active_view":
		a = SetActiveView{View: ActiveView(r.View)}
	case "select_cohort":
		a = SelectCohort{Cohort: cohorts.ID(r.Cohort)}
	case "select_company":
		if r.ID == nil {
			return nil, errors.NewValidationError("id", "required", nil)
		}
		a = SelectCompany{ID: *r.ID}
	case "close_details":
		a = CloseDetails{}
	case "toggle_comparison":
		if r.ID == nil {
			return nil, errors.NewValidationError("id", "required", nil)
		}
		a = ToggleComparison{ID: *r.ID}
	case "compare_from_details":
		a = CompareFromDetails{}
	case "show_comparison":
		a = ShowComparison{}
	case "hide_comparison":
		a = HideComparison{}
	case "set_insight_category":
		a = SetInsightCategory{Category: insights.Category(r.Category)}
	case "set_insight_timeframe":
		a = SetInsightTimeframe{Timeframe: insights.Timeframe(r.Timeframe)}
	case "toggle_advanced_metrics":
		a = ToggleAdvancedMetrics{}
	case "reset":
		a = Reset{}
	default:
		return nil, errors.Wrapf(errors.ErrUnknownAction, "type %q", r.Type)
	}

	if err := Validate(a); err != nil {
		return nil, err
	}
	return a, nil
}
