package seeder

import (
	"context"

	"clarityhire/internal/database"
)

// Seeder inserts one slice of demo data. Requires names the tables and
// columns it writes so the runner can refuse to start on an unmigrated
// database before anything is inserted.
type Seeder interface {
	Name() string
	Requires() []Requirement
	Run(ctx context.Context, db database.DB) error
}

type Requirement struct {
	Table   string
	Columns []string
}
