package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/pkg/db"
)

const (
	driverSQLite   = "sqlite"
	driverSQLite3  = "sqlite3"
	driverPostgres = "postgres"
)

// ErrNoMigrations is returned when there is nothing to roll back.
var ErrNoMigrations = errors.New("there are no migrations to rollback")

// MigrateFunc is a function that executes a migration.
type MigrateFunc func(ctx context.Context, tx *db.Tx) error //nolint:revive

// Migration is a struct that contains the name of the migration and the
// function to execute it.
type Migration struct {
	Version  int64
	Name     string
	Migrate  MigrateFunc
	Rollback MigrateFunc
}

// Migrations is a database model to store migrations.
type Migrations struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Version int64  `db:"version"`
}

func (Migrations) schema(driverName string) (string, error) {
	switch driverName {
	case driverSQLite3, driverSQLite:
		return `CREATE TABLE IF NOT EXISTS migrations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				version INTEGER NOT NULL UNIQUE
			);
		`, nil
	case driverPostgres:
		return `CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			version INTEGER NOT NULL UNIQUE
		);
	`, nil
	default:
		return "", fmt.Errorf("unknown driver: %q", driverName)
	}
}

// Migrate runs the migrations.
func Migrate(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if !hasTable(tx, "migrations") {
			schema, err := Migrations{}.schema(tx.DriverName())
			if err != nil {
				return err
			}
			if _, err := tx.Exec(schema); err != nil {
				return err
			}
		}

		current, err := latest(tx)
		if err != nil {
			return err
		}

		for _, m := range migrations {
			if m.Version <= current.Version {
				continue
			}

			logger.Infof("running migration %d. %s", m.Version, m.Name)
			if err := m.Migrate(ctx, tx); err != nil {
				return fmt.Errorf("migration %d: %w", m.Version, err)
			}

			if _, err := tx.Exec(tx.Rebind("INSERT INTO migrations (name, version) VALUES (?, ?)"), m.Name, m.Version); err != nil {
				return err
			}
		}

		return nil
	})
}

// Rollback rolls back a migration.
func Rollback(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if !hasTable(tx, "migrations") {
			return ErrNoMigrations
		}

		current, err := latest(tx)
		if err != nil {
			return err
		}

		if current.Version == 0 || len(migrations) < int(current.Version) {
			return ErrNoMigrations
		}

		m := migrations[current.Version-1]
		logger.Infof("rolling back migration %d. %s", m.Version, m.Name)
		if err := m.Rollback(ctx, tx); err != nil {
			return err
		}

		if _, err := tx.Exec(tx.Rebind("DELETE FROM migrations WHERE version = ?"), current.Version); err != nil {
			return err
		}

		return nil
	})
}

// Version returns the latest applied migration version, or zero if none has
// been applied.
func Version(ctx context.Context, dbx *db.DB) (int64, error) {
	var version int64
	err := dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if !hasTable(tx, "migrations") {
			return nil
		}
		m, err := latest(tx)
		version = m.Version
		return err
	})
	return version, err
}

func latest(tx *db.Tx) (Migrations, error) {
	var migrs Migrations
	if err := tx.Get(&migrs, tx.Rebind("SELECT * FROM migrations ORDER BY version DESC LIMIT 1")); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return migrs, err
		}
	}
	return migrs, nil
}

func hasTable(tx *db.Tx, tableName string) bool {
	var query string
	switch tx.DriverName() {
	case driverSQLite3, driverSQLite:
		query = "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
	case driverPostgres:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ?"
	default:
		return false
	}

	query = tx.Rebind(query)
	var name string
	err := tx.Get(&name, query, tableName)
	return err == nil
}
