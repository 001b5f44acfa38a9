package dashboard

import (
	"slices"

	"sentinel/internal/cohorts"
	"sentinel/internal/domain/company"
	"sentinel/internal/screener"
	"sentinel/pkg/errors"
)

// Validate rejects actions whose payload names an unknown enum value or field
func Validate(a Action) error {
	switch act := a.(type) {
	case SetMinScore:
		if act.Value < 0 || act.Value > 10 {
			return errors.NewValidationError("value", "must be within 0..10", act.Value)
		}
	case SetMetricFilter:
		if _, err := company.ParseNumericField(string(act.Field)); err != nil {
			return errors.NewValidationError("field", err.Error(), act.Field)
		}
	case SetProfile:
		if !slices.Contains(screener.Profiles, act.Profile) {
			return errors.NewValidationError("profile", "unknown profile", act.Profile)
		}
	case SetSortKey:
		if !act.Key.Valid() {
			return errors.NewValidationError("key", "unknown field", act.Key)
		}
	case SetViewMode:
		if act.Mode != ViewModeGrid && act.Mode != ViewModeCompact {
			return errors.NewValidationError("mode", "unknown view mode", act.Mode)
		}
	case ToggleDisplayMetric:
		if !slices.Contains(company.DisplayMetrics, act.Field) {
			return errors.NewValidationError("field", "not a display metric", act.Field)
		}
	case SetActiveView:
		if act.View != ViewCompanies && act.View != ViewPerformance && act.View != ViewInsights {
			return errors.NewValidationError("view", "unknown view", act.View)
		}
	case SelectCohort:
		if act.Cohort != "" && act.Cohort != cohorts.All && !act.Cohort.Valid() {
			return errors.NewValidationError("cohort", "unknown cohort", act.Cohort)
		}
	case SetInsightCategory:
		if !act.Category.Valid() {
			return errors.NewValidationError("category", "unknown category", act.Category)
		}
	case SetInsightTimeframe:
		if !act.Timeframe.Valid() {
			return errors.NewValidationError("timeframe", "unknown timeframe", act.Timeframe)
		}
	case nil:
		return errors.ErrUnknownAction
	}
	return nil
}

