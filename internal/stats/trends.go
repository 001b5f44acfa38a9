package stats

import "sentinel/internal/domain/company"

const (
	TrendResilient = "Companies show strong resilience in bear markets"
	TrendBullish   = "Companies demonstrate exceptional bull market performance"
	TrendBalanced  = "Companies show balanced performance across market conditions"
)

// Trends holds average 5-year returns across the collection
type Trends struct {
	AvgBaseReturn float64 `json:"avg_base_return"`
	AvgBullReturn float64 `json:"avg_bull_return"`
	AvgBearReturn float64 `json:"avg_bear_return"`
	Headline      string  `json:"headline"`
}

// ComputeTrends averages the return scenarios and picks a headline
func ComputeTrends(companies []company.Company) Trends {
	t := Trends{
		AvgBaseReturn: Mean(companies, func(c company.Company) float64 { return c.Base5YearReturn }),
		AvgBullReturn: Mean(companies, func(c company.Company) float64 { return c.Bull5YearReturn }),
		AvgBearReturn: Mean(companies, func(c company.Company) float64 { return c.Bear5YearReturn }),
	}

	switch {
	case t.AvgBearReturn > -0.05:
		t.Headline = TrendResilient
	case t.AvgBullReturn > 0.15:
		t.Headline = TrendBullish
	default:
		t.Headline = TrendBalanced
	}

	return t
}
