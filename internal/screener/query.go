// Package screener turns the company collection into the filtered, sorted view.
package screener

import (
	"github.com/go-playground/validator/v10"

	"sentinel/internal/domain/company"
	"sentinel/pkg/errors"
)

// Profile is a named return-based preset; exactly one is active at a time
type Profile string

const (
	ProfileAll        Profile = "all"
	ProfileResilient  Profile = "resilient"
	ProfileAggressive Profile = "aggressive"
	ProfileBalanced   Profile = "balanced"
)

// Profiles in selector order
var Profiles = []Profile{ProfileAll, ProfileResilient, ProfileAggressive, ProfileBalanced}

// Direction is the sort order
type Direction string

const (
	Desc Direction = "desc"
	Asc  Direction = "asc"
)

// Toggle flips the direction
func (d Direction) Toggle() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// MetricFilter keeps companies whose Field is at least Min
type MetricFilter struct {
	Field company.Field `json:"field" validate:"required"`
	Min   float64       `json:"min"`
}

// Sort selects the comparator key and direction
type Sort struct {
	Key       company.Field `json:"key" validate:"required"`
	Direction Direction     `json:"direction" validate:"oneof=asc desc"`
}

// Query bundles every active filter and the sort order
type Query struct {
	Search   string        `json:"search" validate:"max=200"`
	MinScore float64       `json:"min_score" validate:"gte=0,lte=10"`
	Metric   *MetricFilter `json:"metric,omitempty"`
	Profile  Profile       `json:"profile" validate:"oneof=all resilient aggressive balanced"`
	Sort     Sort          `json:"sort"`
}

// DefaultQuery matches everything and sorts by overall score, highest first
func DefaultQuery() Query {
	return Query{
		Profile: ProfileAll,
		Sort:    Sort{Key: company.FieldOverallScore, Direction: Desc},
	}
}

var validate = validator.New()

// Validate checks value ranges, enums and that every referenced field exists
func (q Query) Validate() error {
	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(fe.Namespace(), "failed '"+fe.Tag()+"' check", fe.Value())
		}
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	if !q.Sort.Key.Valid() {
		return errors.NewValidationError("sort", "unknown field", q.Sort.Key)
	}
	if q.Metric != nil {
		if _, err := company.ParseNumericField(string(q.Metric.Field)); err != nil {
			return errors.NewValidationError("metric", err.Error(), q.Metric.Field)
		}
	}

	return nil
}
