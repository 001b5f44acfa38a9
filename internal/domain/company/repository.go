package company

import "context"

// Repository reads the remote company table
type Repository interface {
	// FetchAll returns every company ordered by overall score, highest first
	FetchAll(ctx context.Context) ([]Company, error)
}
