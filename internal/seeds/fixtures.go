// Package seeds loads company datasets into the record store.
package seeds

import (
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"sentinel/internal/domain/company"
	"sentinel/pkg/errors"
)

// Record is one company row in a fixture file
type Record struct {
	Name         string  `yaml:"name" validate:"required"`
	Ticker       string  `yaml:"ticker" validate:"required,max=12"`
	OverallScore float64 `yaml:"overall_score" validate:"gte=0,lte=10"`

	Returns struct {
		Base float64 `yaml:"base" validate:"gte=-1"`
		Bear float64 `yaml:"bear" validate:"gte=-1"`
		Bull float64 `yaml:"bull" validate:"gte=-1"`
	} `yaml:"returns"`

	Scores struct {
		FinancialHealth   float64 `yaml:"financial_health" validate:"gte=0,lte=10"`
		CompanyViability  float64 `yaml:"company_viability" validate:"gte=0,lte=10"`
		MarketPosition    float64 `yaml:"market_position" validate:"gte=0,lte=10"`
		RevenueQuality    float64 `yaml:"revenue_quality" validate:"gte=0,lte=10"`
		Profitability     float64 `yaml:"profitability" validate:"gte=0,lte=10"`
		Outlook           float64 `yaml:"outlook" validate:"gte=0,lte=10"`
		TrackRecord       float64 `yaml:"track_record" validate:"gte=0,lte=10"`
		Alignment         float64 `yaml:"alignment" validate:"gte=0,lte=10"`
		CapitalAllocation float64 `yaml:"capital_allocation" validate:"gte=0,lte=10"`
		AnalystSentiment  float64 `yaml:"analyst_sentiment" validate:"gte=0,lte=10"`
	} `yaml:"scores"`

	PodcastURL string `yaml:"podcast_url" validate:"omitempty,url"`
}

// Fixture is the top-level document of a fixture file
type Fixture struct {
	Companies []Record `yaml:"companies" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Load decodes and validates a fixture document. Tickers are upper-cased and must be unique.
func Load(r io.Reader) ([]company.Company, error) {
	var fx Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "decode fixture: %v", err)
	}

	if err := validate.Struct(fx); err != nil {
		return nil, validationError(err)
	}

	seen := make(map[string]bool, len(fx.Companies))
	companies := make([]company.Company, 0, len(fx.Companies))
	for _, rec := range fx.Companies {
		c := rec.toCompany()
		if seen[c.Ticker] {
			return nil, errors.NewValidationError("ticker", "duplicate ticker in fixture", c.Ticker)
		}
		seen[c.Ticker] = true
		companies = append(companies, c)
	}
	return companies, nil
}

// LoadFile reads a fixture file from disk
func LoadFile(path string) ([]company.Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open fixture %s", path)
	}
	defer f.Close()

	return Load(f)
}

func (r Record) toCompany() company.Company {
	c := company.Company{
		Name:                   strings.TrimSpace(r.Name),
		Ticker:                 strings.ToUpper(strings.TrimSpace(r.Ticker)),
		OverallScore:           r.OverallScore,
		Base5YearReturn:        r.Returns.Base,
		Bear5YearReturn:        r.Returns.Bear,
		Bull5YearReturn:        r.Returns.Bull,
		FinancialHealthScore:   r.Scores.FinancialHealth,
		CompanyViabilityScore:  r.Scores.CompanyViability,
		MarketPositionScore:    r.Scores.MarketPosition,
		RevenueQualityScore:    r.Scores.RevenueQuality,
		ProfitabilityScore:     r.Scores.Profitability,
		OutlookScore:           r.Scores.Outlook,
		TrackRecordScore:       r.Scores.TrackRecord,
		AlignmentScore:         r.Scores.Alignment,
		CapitalAllocationScore: r.Scores.CapitalAllocation,
		AnalystSentimentScore:  r.Scores.AnalystSentiment,
	}
	if r.PodcastURL != "" {
		url := r.PodcastURL
		c.PodcastURL = &url
	}
	return c
}

// validationError reports the first failing field as a ValidationError
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.NewValidationError(fe.Namespace(), "failed "+fe.Tag()+" rule", fe.Value())
	}
	return errors.Wrap(errors.ErrInvalidInput, err.Error())
}
