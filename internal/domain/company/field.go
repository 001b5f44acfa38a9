package company

import (
	"fmt"
	"strconv"

	"sentinel/pkg/errors"
)

// Field names a company attribute by its JSON/column name
type Field string

const (
	FieldID                Field = "id"
	FieldName              Field = "name"
	FieldTicker            Field = "ticker"
	FieldOverallScore      Field = "overall_score"
	FieldBaseReturn        Field = "base_5year_return"
	FieldBearReturn        Field = "bear_5year_return"
	FieldBullReturn        Field = "bull_5year_return"
	FieldFinancialHealth   Field = "financial_health_score"
	FieldCompanyViability  Field = "company_viability_score"
	FieldMarketPosition    Field = "market_position_score"
	FieldRevenueQuality    Field = "revenue_quality_score"
	FieldProfitability     Field = "profitability_score"
	FieldOutlook           Field = "outlook_score"
	FieldTrackRecord       Field = "track_record_score"
	FieldAlignment         Field = "alignment_score"
	FieldCapitalAllocation Field = "capital_allocation_score"
	FieldAnalystSentiment  Field = "analyst_sentiment_score"
	FieldPodcastURL        Field = "podcast_url"
)

type fieldSpec struct {
	label   string
	numeric func(c Company) float64
	text    func(c Company) string
}

var fields = map[Field]fieldSpec{
	FieldID:                {label: "ID", numeric: func(c Company) float64 { return float64(c.ID) }},
	FieldName:              {label: "Name", text: func(c Company) string { return c.Name }},
	FieldTicker:            {label: "Ticker", text: func(c Company) string { return c.Ticker }},
	FieldOverallScore:      {label: "Overall Score", numeric: func(c Company) float64 { return c.OverallScore }},
	FieldBaseReturn:        {label: "Base Case Return", numeric: func(c Company) float64 { return c.Base5YearReturn }},
	FieldBearReturn:        {label: "Bear Market Return", numeric: func(c Company) float64 { return c.Bear5YearReturn }},
	FieldBullReturn:        {label: "Bull Market Return", numeric: func(c Company) float64 { return c.Bull5YearReturn }},
	FieldFinancialHealth:   {label: "Financial Health", numeric: func(c Company) float64 { return c.FinancialHealthScore }},
	FieldCompanyViability:  {label: "Company Viability", numeric: func(c Company) float64 { return c.CompanyViabilityScore }},
	FieldMarketPosition:    {label: "Market Position", numeric: func(c Company) float64 { return c.MarketPositionScore }},
	FieldRevenueQuality:    {label: "Revenue Quality", numeric: func(c Company) float64 { return c.RevenueQualityScore }},
	FieldProfitability:     {label: "Profitability", numeric: func(c Company) float64 { return c.ProfitabilityScore }},
	FieldOutlook:           {label: "Outlook", numeric: func(c Company) float64 { return c.OutlookScore }},
	FieldTrackRecord:       {label: "Track Record", numeric: func(c Company) float64 { return c.TrackRecordScore }},
	FieldAlignment:         {label: "Alignment", numeric: func(c Company) float64 { return c.AlignmentScore }},
	FieldCapitalAllocation: {label: "Capital Allocation", numeric: func(c Company) float64 { return c.CapitalAllocationScore }},
	FieldAnalystSentiment:  {label: "Analyst Sentiment", numeric: func(c Company) float64 { return c.AnalystSentimentScore }},
	FieldPodcastURL: {label: "Podcast", text: func(c Company) string {
		if c.PodcastURL == nil {
			return ""
		}
		return *c.PodcastURL
	}},
}

// Metrics is the ordered list of metric fields offered by the filter and sort controls
var Metrics = []Field{
	FieldOverallScore,
	FieldBullReturn,
	FieldBearReturn,
	FieldFinancialHealth,
	FieldMarketPosition,
	FieldCompanyViability,
	FieldRevenueQuality,
	FieldProfitability,
	FieldOutlook,
	FieldTrackRecord,
}

// DisplayMetrics are the sub-metrics a user can toggle on each company card
var DisplayMetrics = Metrics[3:]

// DefaultDisplayMetrics are shown on cards until the user changes the selection
var DefaultDisplayMetrics = []Field{FieldFinancialHealth, FieldMarketPosition}

// SubScores lists every sub-score in detail-view order
var SubScores = []Field{
	FieldFinancialHealth,
	FieldCompanyViability,
	FieldMarketPosition,
	FieldRevenueQuality,
	FieldProfitability,
	FieldOutlook,
	FieldTrackRecord,
	FieldAlignment,
	FieldCapitalAllocation,
	FieldAnalystSentiment,
}

// ParseField validates a field name
func ParseField(name string) (Field, error) {
	f := Field(name)
	if _, ok := fields[f]; !ok {
		return "", errors.Wrapf(errors.ErrUnknownField, "field %q", name)
	}
	return f, nil
}

// ParseNumericField validates a field name and requires a numeric field
func ParseNumericField(name string) (Field, error) {
	f, err := ParseField(name)
	if err != nil {
		return "", err
	}
	if !f.IsNumeric() {
		return "", errors.Wrapf(errors.ErrNotNumeric, "field %q", name)
	}
	return f, nil
}

// Valid reports whether f names a company field
func (f Field) Valid() bool {
	_, ok := fields[f]
	return ok
}

// IsNumeric reports whether f compares numerically
func (f Field) IsNumeric() bool {
	return fields[f].numeric != nil
}

// Label returns the human-readable name of the field
func (f Field) Label() string {
	if spec, ok := fields[f]; ok {
		return spec.label
	}
	return string(f)
}

// Numeric returns the numeric value of f for c; ok is false for text fields.
func (f Field) Numeric(c Company) (float64, bool) {
	spec, ok := fields[f]
	if !ok || spec.numeric == nil {
		return 0, false
	}
	return spec.numeric(c), true
}

// Text returns the value of f for c as a string
func (f Field) Text(c Company) string {
	spec, ok := fields[f]
	if !ok {
		return ""
	}
	if spec.text != nil {
		return spec.text(c)
	}
	if f == FieldID {
		return strconv.FormatInt(c.ID, 10)
	}
	return fmt.Sprint(spec.numeric(c))
}
