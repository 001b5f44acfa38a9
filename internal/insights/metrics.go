// Package insights turns cohort memberships and market-wide averages into
// the fixed list of dashboard insight cards.
package insights

import (
	"sentinel/internal/domain/company"
	"sentinel/internal/stats"
)

// MarketMetrics are collection-wide averages and derived indices
type MarketMetrics struct {
	AvgBullReturn      float64 `json:"avg_bull_return"`
	AvgBearReturn      float64 `json:"avg_bear_return"`
	AvgFinancialHealth float64 `json:"avg_financial_health"`
	AvgMarketPosition  float64 `json:"avg_market_position"`
	VolatilitySpread   float64 `json:"volatility_spread"`
	HealthIndex        float64 `json:"health_index"`
	MomentumScore      float64 `json:"momentum_score"`
	QualityScore       float64 `json:"quality_score"`
}

// ComputeMetrics returns nil for an empty collection
func ComputeMetrics(companies []company.Company) *MarketMetrics {
	if len(companies) == 0 {
		return nil
	}

	m := &MarketMetrics{
		AvgBullReturn:      stats.Mean(companies, func(c company.Company) float64 { return c.Bull5YearReturn }),
		AvgBearReturn:      stats.Mean(companies, func(c company.Company) float64 { return c.Bear5YearReturn }),
		AvgFinancialHealth: stats.Mean(companies, func(c company.Company) float64 { return c.FinancialHealthScore }),
		AvgMarketPosition:  stats.Mean(companies, func(c company.Company) float64 { return c.MarketPositionScore }),
		MomentumScore: stats.Mean(companies, func(c company.Company) float64 {
			return (c.Bull5YearReturn*5 + c.MarketPositionScore) / 2
		}),
		QualityScore: stats.Mean(companies, func(c company.Company) float64 {
			return (c.FinancialHealthScore + c.ProfitabilityScore + c.TrackRecordScore) / 3
		}),
	}
	m.VolatilitySpread = m.AvgBullReturn - m.AvgBearReturn
	m.HealthIndex = (m.AvgFinancialHealth + m.AvgMarketPosition) / 2

	return m
}
