package screener

import (
	"net/url"
	"strconv"
	"strings"

	"sentinel/internal/domain/company"
	"sentinel/pkg/errors"
	"sentinel/pkg/relay"
)

// ParseQuery builds a validated Query from URL parameters:
// q, min_score, metric, metric_min, profile, sort, order.
// Missing parameters keep their DefaultQuery values.
func ParseQuery(values url.Values) (Query, error) {
	q := DefaultQuery()

	q.Search = strings.TrimSpace(values.Get("q"))

	if raw := values.Get("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Query{}, errors.NewValidationError("min_score", "not a number", raw)
		}
		q.MinScore = v
	}

	if raw := values.Get("metric"); raw != "" {
		field, err := company.ParseNumericField(raw)
		if err != nil {
			return Query{}, errors.NewValidationError("metric", err.Error(), raw)
		}
		m := &MetricFilter{Field: field}
		if rawMin := values.Get("metric_min"); rawMin != "" {
			v, err := strconv.ParseFloat(rawMin, 64)
			if err != nil {
				return Query{}, errors.NewValidationError("metric_min", "not a number", rawMin)
			}
			m.Min = v
		}
		q.Metric = m
	}

	if raw := values.Get("profile"); raw != "" {
		q.Profile = Profile(strings.ToLower(raw))
	}
	if raw := values.Get("sort"); raw != "" {
		q.Sort.Key = company.Field(raw)
	}
	if raw := values.Get("order"); raw != "" {
		q.Sort.Direction = Direction(strings.ToLower(raw))
	}

	if err := q.Validate(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// FilterDefinitions describes the filter controls a client can render
func FilterDefinitions() []relay.FilterDefinition {
	metricOptions := make([]relay.FilterOption, 0, len(company.Metrics))
	for _, f := range company.Metrics {
		metricOptions = append(metricOptions, relay.FilterOption{Value: string(f), Label: f.Label()})
	}

	profileOptions := []relay.FilterOption{
		{Value: string(ProfileAll), Label: "All Profiles"},
		{Value: string(ProfileResilient), Label: "Bear Market Resilient"},
		{Value: string(ProfileAggressive), Label: "Bull Market Leaders"},
		{Value: string(ProfileBalanced), Label: "Balanced Performance"},
	}

	zero, ten, half := 0.0, 10.0, 0.5
	defaultProfile := string(ProfileAll)
	defaultSort := string(company.FieldOverallScore)

	return []relay.FilterDefinition{
		{ID: "q", Name: "Search", Type: relay.FilterTypeText},
		{ID: "min_score", Name: "Minimum Overall Score", Type: relay.FilterTypeNumber, Min: &zero, Max: &ten, Step: &half},
		{ID: "metric", Name: "Metric", Type: relay.FilterTypeSelect, Options: metricOptions},
		{ID: "metric_min", Name: "Metric Minimum", Type: relay.FilterTypeNumber, Min: &zero, Max: &ten, Step: &half},
		{ID: "profile", Name: "Performance Profile", Type: relay.FilterTypeSelect, Options: profileOptions, DefaultValue: &defaultProfile},
		{ID: "sort", Name: "Sort By", Type: relay.FilterTypeSelect, Options: metricOptions, DefaultValue: &defaultSort},
	}
}
