package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/migrate"
)

// SqliteDSN returns a data source name for a SQLite database at path with
// foreign keys and a busy timeout enabled.
func SqliteDSN(path string) string {
	return path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// OpenSqlite opens a new temp SQLite database for testing.
// It removes the database file when the test is done using tb.Cleanup.
// If ctx is nil, context.TODO() is used.
func OpenSqlite(ctx context.Context, tb testing.TB) (*db.DB, error) {
	if ctx == nil {
		ctx = context.TODO()
	}
	dbpath := filepath.Join(tb.TempDir(), "test.db")
	dbx, err := db.Open(ctx, "sqlite", SqliteDSN(dbpath))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	tb.Cleanup(func() {
		if err := dbx.Close(); err != nil {
			tb.Error(err)
		}
	})
	return dbx, nil
}

// OpenMigrated opens a temp SQLite database and runs all migrations on it.
// It fails the test on error.
func OpenMigrated(ctx context.Context, tb testing.TB) *db.DB {
	tb.Helper()
	if ctx == nil {
		ctx = context.TODO()
	}
	dbx, err := OpenSqlite(ctx, tb)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	if err := migrate.Migrate(ctx, dbx); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return dbx
}
