package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"clarityhire/internal/database"
)

type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

// Run checks the schema for every seeder first, then runs them in order and
// stops at the first failure.
func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}

	var reqs []Requirement
	for _, s := range r.Seeders {
		if s != nil {
			reqs = append(reqs, s.Requires()...)
		}
	}
	if err := checkSchema(ctx, db, reqs); err != nil {
		return err
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Printf("[Seeder] applied | name=%s took=%s", s.Name(), time.Since(start))
		}
	}
	return nil
}
