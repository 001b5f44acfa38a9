package seeds

import (
	"context"

	"sentinel/internal/domain/company"
	"sentinel/internal/testsupport"
	"sentinel/pkg/errors"
)

// CompanyBuilder builds company records for tests and seed data.
// Defaults describe an unremarkable mid-table company that joins no cohort.
type CompanyBuilder struct {
	db  DBTX
	ctx context.Context
	c   company.Company
}

// NewCompany starts a detached builder; Build works without a database
func NewCompany() *CompanyBuilder {
	ticker := testsupport.UniqueTicker("T")
	return &CompanyBuilder{
		ctx: context.Background(),
		c: company.Company{
			ID:                     testsupport.UniqueID(),
			Name:                   ticker + " Holdings",
			Ticker:                 ticker,
			OverallScore:           6.5,
			Base5YearReturn:        0.06,
			Bear5YearReturn:        -0.12,
			Bull5YearReturn:        0.09,
			FinancialHealthScore:   6,
			CompanyViabilityScore:  6,
			MarketPositionScore:    6,
			RevenueQualityScore:    6,
			ProfitabilityScore:     6,
			OutlookScore:           6,
			TrackRecordScore:       6,
			AlignmentScore:         6,
			CapitalAllocationScore: 6,
			AnalystSentimentScore:  6,
		},
	}
}

// FromCompany starts a builder from an existing record
func FromCompany(c company.Company) *CompanyBuilder {
	return &CompanyBuilder{ctx: context.Background(), c: c}
}

func (b *CompanyBuilder) WithID(id int64) *CompanyBuilder {
	b.c.ID = id
	return b
}

func (b *CompanyBuilder) WithName(name string) *CompanyBuilder {
	b.c.Name = name
	return b
}

func (b *CompanyBuilder) WithTicker(ticker string) *CompanyBuilder {
	b.c.Ticker = ticker
	return b
}

func (b *CompanyBuilder) WithOverallScore(score float64) *CompanyBuilder {
	b.c.OverallScore = score
	return b
}

// WithReturns sets the base, bear and bull 5-year returns
func (b *CompanyBuilder) WithReturns(base, bear, bull float64) *CompanyBuilder {
	b.c.Base5YearReturn = base
	b.c.Bear5YearReturn = bear
	b.c.Bull5YearReturn = bull
	return b
}

// WithSubScores sets every sub-score to the same value
func (b *CompanyBuilder) WithSubScores(score float64) *CompanyBuilder {
	b.c.FinancialHealthScore = score
	b.c.CompanyViabilityScore = score
	b.c.MarketPositionScore = score
	b.c.RevenueQualityScore = score
	b.c.ProfitabilityScore = score
	b.c.OutlookScore = score
	b.c.TrackRecordScore = score
	b.c.AlignmentScore = score
	b.c.CapitalAllocationScore = score
	b.c.AnalystSentimentScore = score
	return b
}

func (b *CompanyBuilder) WithFinancialHealth(score float64) *CompanyBuilder {
	b.c.FinancialHealthScore = score
	return b
}

func (b *CompanyBuilder) WithMarketPosition(score float64) *CompanyBuilder {
	b.c.MarketPositionScore = score
	return b
}

func (b *CompanyBuilder) WithOutlook(score float64) *CompanyBuilder {
	b.c.OutlookScore = score
	return b
}

func (b *CompanyBuilder) WithProfitability(score float64) *CompanyBuilder {
	b.c.ProfitabilityScore = score
	return b
}

func (b *CompanyBuilder) WithTrackRecord(score float64) *CompanyBuilder {
	b.c.TrackRecordScore = score
	return b
}

func (b *CompanyBuilder) WithPodcastURL(url string) *CompanyBuilder {
	b.c.PodcastURL = &url
	return b
}

// HighPerformer tunes the record into the high-performer, momentum and high-growth cohorts
func (b *CompanyBuilder) HighPerformer() *CompanyBuilder {
	return b.WithOverallScore(9.1).
		WithReturns(0.14, -0.04, 0.26).
		WithSubScores(8.5)
}

// Risky tunes the record into the risky-candidates cohort only
func (b *CompanyBuilder) Risky() *CompanyBuilder {
	return b.WithOverallScore(4.8).
		WithReturns(-0.02, -0.25, 0.04).
		WithSubScores(4)
}

// Build returns the record without touching the database
func (b *CompanyBuilder) Build() company.Company {
	return b.c
}

// Insert upserts the record by ticker and stores the database ID on the builder
func (b *CompanyBuilder) Insert() (company.Company, error) {
	if b.db == nil {
		return company.Company{}, errors.New("company builder has no database")
	}

	const query = `
		INSERT INTO companies (
			name, ticker, overall_score,
			base_5year_return, bear_5year_return, bull_5year_return,
			financial_health_score, company_viability_score, market_position_score,
			revenue_quality_score, profitability_score, outlook_score, track_record_score,
			alignment_score, capital_allocation_score, analyst_sentiment_score,
			podcast_url
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		ON CONFLICT (ticker) DO UPDATE SET
			name = EXCLUDED.name,
			overall_score = EXCLUDED.overall_score,
			base_5year_return = EXCLUDED.base_5year_return,
			bear_5year_return = EXCLUDED.bear_5year_return,
			bull_5year_return = EXCLUDED.bull_5year_return,
			financial_health_score = EXCLUDED.financial_health_score,
			company_viability_score = EXCLUDED.company_viability_score,
			market_position_score = EXCLUDED.market_position_score,
			revenue_quality_score = EXCLUDED.revenue_quality_score,
			profitability_score = EXCLUDED.profitability_score,
			outlook_score = EXCLUDED.outlook_score,
			track_record_score = EXCLUDED.track_record_score,
			alignment_score = EXCLUDED.alignment_score,
			capital_allocation_score = EXCLUDED.capital_allocation_score,
			analyst_sentiment_score = EXCLUDED.analyst_sentiment_score,
			podcast_url = EXCLUDED.podcast_url
		RETURNING id`

	c := b.c
	err := b.db.GetContext(b.ctx, &b.c.ID, query,
		c.Name, c.Ticker, c.OverallScore,
		c.Base5YearReturn, c.Bear5YearReturn, c.Bull5YearReturn,
		c.FinancialHealthScore, c.CompanyViabilityScore, c.MarketPositionScore,
		c.RevenueQualityScore, c.ProfitabilityScore, c.OutlookScore, c.TrackRecordScore,
		c.AlignmentScore, c.CapitalAllocationScore, c.AnalystSentimentScore,
		c.PodcastURL,
	)
	if err != nil {
		return company.Company{}, errors.Wrapf(err, "insert company %s", c.Ticker)
	}

	return b.c, nil
}

// MustInsert inserts the record and panics on failure
func (b *CompanyBuilder) MustInsert() company.Company {
	c, err := b.Insert()
	if err != nil {
		panic(err)
	}
	return c
}
