package test

import (
	"context"

	tseeds "sentinel/internal/testsupport/seeds"
)

// SeedCompanies inserts a small dataset built from the test presets:
// one high performer, one risky candidate and one unremarkable company
func SeedCompanies(ctx context.Context, s *tseeds.Seeder) error {
	s.WithContext(ctx)

	builders := []*tseeds.CompanyBuilder{
		s.Company().WithTicker("TSTA").WithName("Test Alpha").HighPerformer(),
		s.Company().WithTicker("TSTB").WithName("Test Beta").Risky(),
		s.Company().WithTicker("TSTC").WithName("Test Gamma"),
	}

	for _, b := range builders {
		c, err := b.Insert()
		if err != nil {
			return err
		}
		s.Log().Infow("Seeded company", "ticker", c.Ticker, "id", c.ID)
	}
	return nil
}
