package db

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/matryer/is"
)

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.TODO(), "invalid", "")
	if err == nil {
		t.Fatal("Open(invalid) => nil, want error")
	}
	if !strings.Contains(err.Error(), "unknown driver") {
		t.Errorf("Open(invalid) => %v, want error containing 'unknown driver'", err)
	}
}

func TestOpenSqliteSingleConn(t *testing.T) {
	is := is.New(t)
	dbx, err := Open(context.TODO(), "sqlite", filepath.Join(t.TempDir(), "punch.db"))
	is.NoErr(err)
	defer dbx.Close() //nolint:errcheck
	is.Equal(dbx.Stats().MaxOpenConnections, 1)
}

func TestContext(t *testing.T) {
	is := is.New(t)
	is.True(FromContext(context.TODO()) == nil)

	dbx, err := Open(context.TODO(), "sqlite", filepath.Join(t.TempDir(), "punch.db"))
	is.NoErr(err)
	defer dbx.Close() //nolint:errcheck

	// Readiness checks ping the handle found in the request context.
	got := FromContext(WithContext(context.TODO(), dbx))
	is.Equal(got, dbx)
	is.NoErr(got.PingContext(context.TODO()))
}

func TestStatement(t *testing.T) {
	cases := []struct {
		query string
		verb  string
		table string
	}{
		{"SELECT * FROM time_sessions WHERE id = ?", "select", "time_sessions"},
		{"INSERT INTO break_segments (session_id) VALUES (?)", "insert", "break_segments"},
		{"UPDATE correction_requests\n\tSET status = ? WHERE status = 'PENDING'", "update", "correction_requests"},
		{"DELETE FROM team_members WHERE team_id = ?", "delete", "team_members"},
		{"CREATE TABLE IF NOT EXISTS adjustments (id INTEGER)", "create", "adjustments"},
		{"SELECT count(*) FROM \"users\";", "select", "users"},
		{"", "", ""},
	}
	for _, c := range cases {
		verb, table := statement(c.query)
		if verb != c.verb || table != c.table {
			t.Errorf("statement(%q) => %q, %q, want %q, %q", c.query, verb, table, c.verb, c.table)
		}
	}
}

func TestTraceTagsTransactions(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	dbx, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "punch.db"))
	is.NoErr(err)
	defer dbx.Close() //nolint:errcheck
	dbx.logger = logger

	_, err = dbx.ExecContext(ctx, "CREATE TABLE teams (id INTEGER PRIMARY KEY, name TEXT NOT NULL)")
	is.NoErr(err)

	errBoom := errors.New("boom")
	err = dbx.TransactionContext(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO teams (name) VALUES (?)", "core"); err != nil {
			return err
		}
		return errBoom
	})
	is.True(errors.Is(err, errBoom))

	var n int
	is.NoErr(dbx.GetContext(ctx, &n, "SELECT count(*) FROM teams"))
	is.Equal(n, 0) // rolled back

	out := buf.String()
	is.True(strings.Contains(out, "op=insert table=teams"))
	is.True(strings.Contains(out, "tx=1"))
	is.True(strings.Contains(out, "rollback"))

	buf.Reset()
	is.True(dbx.GetContext(ctx, &n, "SELECT count(*) FROM missing") != nil)
	is.True(strings.Contains(buf.String(), "query failed"))
	is.True(strings.Contains(buf.String(), "table=missing"))
}
