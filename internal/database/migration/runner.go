package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"clarityhire/migrations"
)

const advisoryLockKey = 746295114

// Runner applies V<n>__<name>.sql files in version order. Files come from Dir
// when set, otherwise from the migrations embedded in the binary.
type Runner struct {
	Dir    string
	FS     fs.FS
	Logger *log.Logger
}

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

type appliedMigration struct {
	Version  int64
	Checksum string
}

func (r Runner) Run(ctx context.Context, db *sql.DB) ([]Migration, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}

	migs, err := Load(r.source())
	if err != nil {
		return nil, err
	}
	if len(migs) == 0 {
		return nil, nil
	}

	if err := ensureSchemaMigrations(ctx, db); err != nil {
		return nil, err
	}

	if err := advisoryLock(ctx, db, advisoryLockKey); err != nil {
		return nil, err
	}
	defer func() {
		_ = advisoryUnlock(context.Background(), db, advisoryLockKey)
	}()

	applied, err := getApplied(ctx, db)
	if err != nil {
		return nil, err
	}

	pending := Pending(migs, applied)
	for _, m := range migs {
		if a, ok := applied[m.Version]; ok && a.Checksum != m.Checksum {
			return nil, fmt.Errorf("migration checksum mismatch: version=%d name=%s", m.Version, m.Name)
		}
	}

	for _, m := range pending {
		if err := applyOne(ctx, db, m); err != nil {
			return nil, err
		}
		if r.Logger != nil {
			r.Logger.Printf("[Migration] applied | version=%d file=%s", m.Version, m.Filename)
		}
	}

	return pending, nil
}

func (r Runner) source() fs.FS {
	if strings.TrimSpace(r.Dir) != "" {
		return os.DirFS(r.Dir)
	}
	if r.FS != nil {
		return r.FS
	}
	return migrations.FS
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Load reads and orders the migration files found at the root of fsys.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		m := fileRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		v, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version: %s", name)
		}

		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		sqlText := strings.TrimSpace(string(b))
		if sqlText == "" {
			return nil, fmt.Errorf("empty migration file: %s", name)
		}

		h := sha256.Sum256([]byte(sqlText))
		migs = append(migs, Migration{
			Version:  v,
			Name:     m[2],
			Filename: name,
			SQL:      sqlText,
			Checksum: hex.EncodeToString(h[:]),
		})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version: %d", migs[i].Version)
		}
	}

	return migs, nil
}

// Pending returns the migrations whose version has not been applied yet.
func Pending(migs []Migration, applied map[int64]appliedMigration) []Migration {
	out := make([]Migration, 0, len(migs))
	for _, m := range migs {
		if _, ok := applied[m.Version]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}

func ensureSchemaMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func advisoryLock(ctx context.Context, db *sql.DB, key int64) error {
	_, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, key)
	return err
}

func advisoryUnlock(ctx context.Context, db *sql.DB, key int64) error {
	_, err := db.ExecContext(ctx, `SELECT pg_advisory_unlock($1)`, key)
	return err
}

func getApplied(ctx context.Context, db *sql.DB) (map[int64]appliedMigration, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]appliedMigration{}
	for rows.Next() {
		var v int64
		var c string
		if err := rows.Scan(&v, &c); err != nil {
			return nil, err
		}
		out[v] = appliedMigration{Version: v, Checksum: c}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO schema_migrations (version, name, checksum, applied_at) VALUES ($1, $2, $3, $4)`,
		m.Version,
		m.Name,
		m.Checksum,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}
