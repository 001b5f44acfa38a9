package insights

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"sentinel/internal/cohorts"
	"sentinel/internal/domain/company"
)

// Category groups insight cards
type Category string

const (
	CategoryAll         Category = "all"
	CategoryPerformance Category = "performance"
	CategoryQuality     Category = "quality"
	CategoryRisk        Category = "risk"
	CategoryOpportunity Category = "opportunity"
	CategoryTrends      Category = "trends"
)

// Categories in tab order
var Categories = []Category{
	CategoryAll, CategoryPerformance, CategoryQuality, CategoryRisk, CategoryOpportunity, CategoryTrends,
}

// Timeframe is the horizon an insight speaks to
type Timeframe string

const (
	TimeframeAll    Timeframe = "all"
	TimeframeShort  Timeframe = "short"
	TimeframeMedium Timeframe = "medium"
	TimeframeLong   Timeframe = "long"
)

// Timeframes in selector order
var Timeframes = []Timeframe{TimeframeAll, TimeframeShort, TimeframeMedium, TimeframeLong}

// Valid reports whether c is a known category or the wildcard
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Valid reports whether t is a known timeframe or the wildcard
func (t Timeframe) Valid() bool {
	for _, known := range Timeframes {
		if t == known {
			return true
		}
	}
	return false
}

// Insight is one display-ready card
type Insight struct {
	ID          string    `json:"id"`
	Category    Category  `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Details     string    `json:"details"`
	Timeframe   Timeframe `json:"timeframe"`
}

// Generate builds the fixed insight list. The list is empty for an empty collection.
func Generate(companies []company.Company) []Insight {
	if len(companies) == 0 {
		return []Insight{}
	}
	return Build(cohorts.Classify(companies), *ComputeMetrics(companies))
}

// Build assembles the cards from a classification and market metrics
func Build(a cohorts.Analysis, m MarketMetrics) []Insight {
	tickers := func(id cohorts.ID) string { return strings.Join(a.Tickers(id), ", ") }

	return []Insight{
		{
			ID:          "market-leaders",
			Category:    CategoryPerformance,
			Title:       "Market Leaders",
			Description: fmt.Sprintf("%d companies demonstrate exceptional performance", a.Count(cohorts.HighPerformers)),
			Details:     tickers(cohorts.HighPerformers),
			Timeframe:   TimeframeLong,
		},
		{
			ID:          "defensive-champions",
			Category:    CategoryPerformance,
			Title:       "Defensive Champions",
			Description: fmt.Sprintf("%d companies with strong bear market resilience", a.Count(cohorts.Defensive)),
			Details:     tickers(cohorts.Defensive),
			Timeframe:   TimeframeMedium,
		},
		{
			ID:          "growth-leaders",
			Category:    CategoryPerformance,
			Title:       "Growth Leaders",
			Description: fmt.Sprintf("%d companies with exceptional growth metrics", a.Count(cohorts.HighGrowth)),
			Details:     tickers(cohorts.HighGrowth),
			Timeframe:   TimeframeShort,
		},
		{
			ID:          "quality-leaders",
			Category:    CategoryQuality,
			Title:       "Quality Leaders",
			Description: "Companies with superior fundamentals and stability",
			Details:     "Quality Score: " + oneDecimal(m.QualityScore) + "/10",
			Timeframe:   TimeframeLong,
		},
		{
			ID:          "value-opportunities",
			Category:    CategoryQuality,
			Title:       "Value Opportunities",
			Description: fmt.Sprintf("%d companies with strong value characteristics", a.Count(cohorts.Value)),
			Details:     tickers(cohorts.Value),
			Timeframe:   TimeframeMedium,
		},
		{
			ID:          "high-risk-alerts",
			Category:    CategoryRisk,
			Title:       "High Risk Alerts",
			Description: fmt.Sprintf("%d companies require attention", a.Count(cohorts.RiskyCandidates)),
			Details:     tickers(cohorts.RiskyCandidates),
			Timeframe:   TimeframeShort,
		},
		{
			ID:          "market-volatility",
			Category:    CategoryRisk,
			Title:       "Market Volatility",
			Description: "Volatility spread: " + oneDecimal(m.VolatilitySpread*100) + "%",
			Details:     "Difference between bull and bear market performance",
			Timeframe:   TimeframeMedium,
		},
		{
			ID:          "growth-opportunities",
			Category:    CategoryOpportunity,
			Title:       "Growth Opportunities",
			Description: fmt.Sprintf("%d companies with strong growth potential", a.Count(cohorts.HighGrowth)),
			Details:     tickers(cohorts.HighGrowth),
			Timeframe:   TimeframeMedium,
		},
		{
			ID:          "momentum-leaders",
			Category:    CategoryOpportunity,
			Title:       "Momentum Leaders",
			Description: fmt.Sprintf("%d companies showing strong momentum", a.Count(cohorts.Momentum)),
			Details:     tickers(cohorts.Momentum),
			Timeframe:   TimeframeShort,
		},
		{
			ID:          "market-momentum",
			Category:    CategoryTrends,
			Title:       "Market Momentum",
			Description: "Momentum Score: " + oneDecimal(m.MomentumScore) + "/10",
			Details:     "Combined measure of performance and market strength",
			Timeframe:   TimeframeShort,
		},
		{
			ID:          "market-health",
			Category:    CategoryTrends,
			Title:       "Market Health",
			Description: "Health Index: " + oneDecimal(m.HealthIndex) + "/10",
			Details:     "Overall market robustness indicator",
			Timeframe:   TimeframeMedium,
		},
	}
}

// Filter selects cards by category and timeframe. The wildcard "all" (or an
// empty value) matches everything. The input list is not modified.
func Filter(list []Insight, category Category, timeframe Timeframe) []Insight {
	out := make([]Insight, 0, len(list))
	for _, i := range list {
		if category != "" && category != CategoryAll && i.Category != category {
			continue
		}
		if timeframe != "" && timeframe != TimeframeAll && i.Timeframe != timeframe {
			continue
		}
		out = append(out, i)
	}
	return out
}

func oneDecimal(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}
