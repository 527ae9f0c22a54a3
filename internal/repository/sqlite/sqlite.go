package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/msomdec/rewise/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

// DB wraps the SQLite connection and hands out repositories.
type DB struct {
	SqlDB *sql.DB
	x     *sqlx.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := sqlDB.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := sqlDB.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// SQLite has a single writer.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: sqlDB, x: sqlx.NewDb(sqlDB, driverName)}, nil
}

// Migrate applies pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.x, migrations.FS)
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// KV returns the key-value store backing study state.
func (db *DB) KV() *KVStore {
	return &KVStore{db: db.x}
}

// Cards returns the card catalog repository.
func (db *DB) Cards() *CardRepository {
	return &CardRepository{db: db.x}
}
