package seeds

import (
	"context"
	"database/sql"

	"sentinel/internal/domain/company"
	"sentinel/migrations"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

// DBTX is satisfied by *sqlx.DB and *sqlx.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Seeder creates company fixtures through a fluent builder API
type Seeder struct {
	db  DBTX
	ctx context.Context
	log *logger.Logger
}

// New creates a new Seeder instance
func New(db DBTX) *Seeder {
	return &Seeder{
		db:  db,
		ctx: context.Background(),
		log: logger.Get().With("component", "seeds"),
	}
}

// WithContext sets the context for database operations
func (s *Seeder) WithContext(ctx context.Context) *Seeder {
	s.ctx = ctx
	return s
}

// Log returns the logger instance
func (s *Seeder) Log() *logger.Logger {
	return s.log
}

// EnsureSchema applies the embedded up-migrations; every statement is idempotent
func (s *Seeder) EnsureSchema() error {
	scripts, err := migrations.PostgresUp()
	if err != nil {
		return errors.Wrap(err, "load migrations")
	}
	for _, script := range scripts {
		if _, err := s.db.ExecContext(s.ctx, script); err != nil {
			return errors.Wrap(err, "apply migration")
		}
	}
	return nil
}

// Company starts building a company attached to this seeder's database
func (s *Seeder) Company() *CompanyBuilder {
	b := NewCompany()
	b.db = s.db
	b.ctx = s.ctx
	return b
}

// CompanyFrom starts a database-bound builder from an existing record
func (s *Seeder) CompanyFrom(c company.Company) *CompanyBuilder {
	b := FromCompany(c)
	b.db = s.db
	b.ctx = s.ctx
	return b
}
