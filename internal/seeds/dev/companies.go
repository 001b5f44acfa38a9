package dev

import (
	"bytes"
	"context"
	_ "embed"

	"sentinel/internal/domain/company"
	"sentinel/internal/seeds"
	tseeds "sentinel/internal/testsupport/seeds"
	"sentinel/pkg/errors"
)

//go:embed companies.yaml
var companiesYAML []byte

// Dataset parses the embedded development dataset
func Dataset() ([]company.Company, error) {
	companies, err := seeds.Load(bytes.NewReader(companiesYAML))
	if err != nil {
		return nil, errors.Wrap(err, "load development dataset")
	}
	return companies, nil
}

// SeedCompanies upserts the development dataset (idempotent by ticker)
func SeedCompanies(ctx context.Context, s *tseeds.Seeder) error {
	companies, err := Dataset()
	if err != nil {
		return err
	}
	return seeds.Apply(ctx, s, companies)
}
