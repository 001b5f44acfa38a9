// Package stats computes summary figures over the company collection.
package stats

import (
	"github.com/shopspring/decimal"

	"sentinel/internal/domain/company"
)

// Aggregate is the summary snapshot shown in the stats panel
type Aggregate struct {
	Count             int              `json:"count"`
	MeanOverallScore  float64          `json:"mean_overall_score"`
	TopPerformer      *company.Company `json:"top_performer"`
	HighestBullReturn float64          `json:"highest_bull_return"`
}

// Compute derives the aggregate snapshot. An empty collection yields zero values
// and no top performer.
func Compute(companies []company.Company) Aggregate {
	if len(companies) == 0 {
		return Aggregate{}
	}

	sum := decimal.Zero
	top := companies[0]
	maxBull := companies[0].Bull5YearReturn

	for _, c := range companies {
		sum = sum.Add(decimal.NewFromFloat(c.OverallScore))
		// strictly greater keeps the first company on ties
		if c.OverallScore > top.OverallScore {
			top = c
		}
		if c.Bull5YearReturn > maxBull {
			maxBull = c.Bull5YearReturn
		}
	}

	mean := sum.Div(decimal.NewFromInt(int64(len(companies)))).Round(2)

	return Aggregate{
		Count:             len(companies),
		MeanOverallScore:  mean.InexactFloat64(),
		TopPerformer:      &top,
		HighestBullReturn: maxBull,
	}
}

// Mean returns the arithmetic mean of field across companies, 0 when empty
func Mean(companies []company.Company, value func(company.Company) float64) float64 {
	if len(companies) == 0 {
		return 0
	}
	var sum float64
	for _, c := range companies {
		sum += value(c)
	}
	return sum / float64(len(companies))
}
