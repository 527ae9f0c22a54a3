package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// The SQLite implementation owns its migration files; the rest of the
// application only sees the repositories it hands out.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
