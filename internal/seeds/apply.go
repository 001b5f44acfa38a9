package seeds

import (
	"context"

	"sentinel/internal/domain/company"
	tseeds "sentinel/internal/testsupport/seeds"
)

// Apply upserts companies in order; existing tickers are overwritten
func Apply(ctx context.Context, s *tseeds.Seeder, companies []company.Company) error {
	s.WithContext(ctx)
	log := s.Log()

	for _, c := range companies {
		stored, err := s.CompanyFrom(c).Insert()
		if err != nil {
			return err
		}
		log.Debugw("Seeded company", "ticker", stored.Ticker, "id", stored.ID)
	}

	log.Infow("✅ Companies seeded", "count", len(companies))
	return nil
}
