package migrations

import (
	"context"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/blake2b"
)

// Migration is one schema change read from a .sql file.
type Migration struct {
	Name     string
	SQL      string
	Checksum string
}

// Load reads every .sql file at the root of fsys, ordered by name.
func Load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migration files: %w", err)
	}
	slices.Sort(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		sum := blake2b.Sum256(data)
		out = append(out, Migration{Name: name, SQL: string(data), Checksum: hex.EncodeToString(sum[:])})
	}
	return out, nil
}

type appliedMigration struct {
	Filename string `db:"filename"`
	Checksum string `db:"checksum"`
}

// Run applies the migrations in fsys that the database has not seen yet.
// Each one commits together with its schema_migrations row. A migration
// whose file changed after it was applied stops the run.
func Run(ctx context.Context, db *sqlx.DB, fsys fs.FS) error {
	pending, err := Load(fsys)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename   TEXT PRIMARY KEY,
			checksum   TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("ensure migrations table: %w", err)
	}

	var rows []appliedMigration
	if err := db.SelectContext(ctx, &rows, "SELECT filename, checksum FROM schema_migrations"); err != nil {
		return fmt.Errorf("get applied migrations: %w", err)
	}
	applied := make(map[string]string, len(rows))
	for _, r := range rows {
		applied[r.Filename] = r.Checksum
	}

	for _, m := range pending {
		if sum, ok := applied[m.Name]; ok {
			if sum != m.Checksum {
				return fmt.Errorf("migration %s was modified after it was applied", m.Name)
			}
			slog.Debug("migration already applied", "file", m.Name)
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Name, err)
		}
		slog.Info("migration applied", "file", m.Name)
	}
	return nil
}

func apply(ctx context.Context, db *sqlx.DB, m Migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("execute sql: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (filename, checksum) VALUES (?, ?)", m.Name, m.Checksum,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit()
}
