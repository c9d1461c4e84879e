package migrate

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/punch/pkg/db"
)

//go:embed *.sql
var sqls embed.FS

// Keep this in order of execution, oldest to newest. Versions start at one
// and have no gaps so Rollback can index by version.
var migrations = []Migration{
	createTables,
	createRequests,
}

// sqlMigration returns a migration backed by the embedded
// NNNN_<name>_<driver>.<up|down>.sql files.
func sqlMigration(version int64, name string) Migration {
	return Migration{
		Version: version,
		Name:    name,
		Migrate: func(ctx context.Context, tx *db.Tx) error {
			return execFile(ctx, tx, sqlFile(version, name, tx.DriverName(), "up"))
		},
		Rollback: func(ctx context.Context, tx *db.Tx) error {
			return execFile(ctx, tx, sqlFile(version, name, tx.DriverName(), "down"))
		},
	}
}

// sqlFile names the script of a migration, e.g.
// 0002_create_requests_postgres.up.sql.
func sqlFile(version int64, name, driverName, direction string) string {
	if driverName == driverSQLite3 {
		driverName = driverSQLite
	}
	stem := strings.Join(strings.Fields(strings.ToLower(name)), "_")
	return fmt.Sprintf("%04d_%s_%s.%s.sql", version, stem, driverName, direction)
}

func execFile(ctx context.Context, h db.Handler, fn string) error {
	sqlstr, err := sqls.ReadFile(fn)
	if err != nil {
		return fmt.Errorf("read %s: %w", fn, err)
	}

	_, err = h.ExecContext(ctx, string(sqlstr))
	return err
}
