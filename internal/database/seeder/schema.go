package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"clarityhire/internal/database"
)

var ErrSchemaNotMigrated = errors.New("database schema is behind the seeders, run `clarityctl migrate` first")

// checkSchema loads the columns of every required table in one query and
// reports all that are missing.
func checkSchema(ctx context.Context, db database.DB, reqs []Requirement) error {
	tables := make([]string, 0, len(reqs))
	for _, r := range reqs {
		tables = append(tables, r.Table)
	}
	if len(tables) == 0 {
		return nil
	}

	rows, err := db.Query(ctx,
		`SELECT table_name, column_name FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = ANY($1)`,
		tables,
	)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	defer rows.Close()

	existing := map[string]map[string]struct{}{}
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return fmt.Errorf("read schema: %w", err)
		}
		if existing[table] == nil {
			existing[table] = map[string]struct{}{}
		}
		existing[table][column] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if missing := missingColumns(existing, reqs); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrSchemaNotMigrated, strings.Join(missing, ", "))
	}
	return nil
}

// missingColumns returns "table.column" for each requirement absent from
// existing, sorted and without repeats.
func missingColumns(existing map[string]map[string]struct{}, reqs []Requirement) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range reqs {
		for _, col := range r.Columns {
			if _, ok := existing[r.Table][col]; ok {
				continue
			}
			key := r.Table + "." + col
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}
