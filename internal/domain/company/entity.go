package company

import "strings"

// Company is one company's stored metrics snapshot.
// Records are read-only once fetched; a refresh replaces the whole collection.
type Company struct {
	ID     int64  `db:"id" json:"id" yaml:"id"`
	Name   string `db:"name" json:"name" yaml:"name"`
	Ticker string `db:"ticker" json:"ticker" yaml:"ticker"`

	OverallScore float64 `db:"overall_score" json:"overall_score" yaml:"overall_score"`

	// 5-year return scenarios as fractional ratios (0.15 = 15%)
	Base5YearReturn float64 `db:"base_5year_return" json:"base_5year_return" yaml:"base_5year_return"`
	Bear5YearReturn float64 `db:"bear_5year_return" json:"bear_5year_return" yaml:"bear_5year_return"`
	Bull5YearReturn float64 `db:"bull_5year_return" json:"bull_5year_return" yaml:"bull_5year_return"`

	// Sub-scores, conventionally 0..10
	FinancialHealthScore   float64 `db:"financial_health_score" json:"financial_health_score" yaml:"financial_health_score"`
	CompanyViabilityScore  float64 `db:"company_viability_score" json:"company_viability_score" yaml:"company_viability_score"`
	MarketPositionScore    float64 `db:"market_position_score" json:"market_position_score" yaml:"market_position_score"`
	RevenueQualityScore    float64 `db:"revenue_quality_score" json:"revenue_quality_score" yaml:"revenue_quality_score"`
	ProfitabilityScore     float64 `db:"profitability_score" json:"profitability_score" yaml:"profitability_score"`
	OutlookScore           float64 `db:"outlook_score" json:"outlook_score" yaml:"outlook_score"`
	TrackRecordScore       float64 `db:"track_record_score" json:"track_record_score" yaml:"track_record_score"`
	AlignmentScore         float64 `db:"alignment_score" json:"alignment_score" yaml:"alignment_score"`
	CapitalAllocationScore float64 `db:"capital_allocation_score" json:"capital_allocation_score" yaml:"capital_allocation_score"`
	AnalystSentimentScore  float64 `db:"analyst_sentiment_score" json:"analyst_sentiment_score" yaml:"analyst_sentiment_score"`

	PodcastURL *string `db:"podcast_url" json:"podcast_url,omitempty" yaml:"podcast_url,omitempty"`
}

// MatchesSearch reports whether term is a case-insensitive substring of the name or ticker.
// An empty term matches every company.
func (c Company) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Ticker), term)
}

// FindByID returns the company with the given ID
func FindByID(companies []Company, id int64) (Company, bool) {
	for _, c := range companies {
		if c.ID == id {
			return c, true
		}
	}
	return Company{}, false
}

// Tickers returns the tickers of companies in order
func Tickers(companies []Company) []string {
	out := make([]string, len(companies))
	for i, c := range companies {
		out[i] = c.Ticker
	}
	return out
}
