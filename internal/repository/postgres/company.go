package postgres

import (
	"context"
	"time"

	"sentinel/internal/domain/company"
	"sentinel/internal/metrics"
	"sentinel/pkg/errors"
)

// Compile-time check
var _ company.Repository = (*CompanyRepository)(nil)

const companyColumns = `
	id, name, ticker, overall_score,
	base_5year_return, bear_5year_return, bull_5year_return,
	financial_health_score, company_viability_score, market_position_score,
	revenue_quality_score, profitability_score, outlook_score, track_record_score,
	alignment_score, capital_allocation_score, analyst_sentiment_score,
	podcast_url`

// CompanyRepository reads the companies table
type CompanyRepository struct {
	db DBTX
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db DBTX) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FetchAll returns every company, highest overall score first
func (r *CompanyRepository) FetchAll(ctx context.Context) ([]company.Company, error) {
	query := `SELECT` + companyColumns + ` FROM companies ORDER BY overall_score DESC`

	start := time.Now()
	companies := []company.Company{}
	err := r.db.SelectContext(ctx, &companies, query)
	metrics.RecordDBQuery("postgres", "fetch_companies", time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(err, "select companies")
	}

	return companies, nil
}
