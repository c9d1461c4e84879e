package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/test"
	"github.com/matryer/is"
)

func TestWrapErrorSqliteConstraints(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	_, err = dbx.ExecContext(ctx, `CREATE TABLE things (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		size INTEGER NOT NULL CHECK (size >= 0)
	)`)
	is.NoErr(err)

	_, err = dbx.ExecContext(ctx, "INSERT INTO things (name, size) VALUES ('a', 1)")
	is.NoErr(err)

	_, err = dbx.ExecContext(ctx, "INSERT INTO things (name, size) VALUES ('a', 2)")
	is.True(errors.Is(db.WrapError(err), db.ErrDuplicateKey))

	_, err = dbx.ExecContext(ctx, "INSERT INTO things (name, size) VALUES ('b', -1)")
	is.True(errors.Is(db.WrapError(err), db.ErrConstraint))

	var name string
	err = dbx.GetContext(ctx, &name, "SELECT name FROM things WHERE id = 42")
	is.True(errors.Is(db.WrapError(err), db.ErrRecordNotFound))
}

func TestTransactionRollback(t *testing.T) {
	is := is.New(t)
	ctx := context.TODO()
	dbx, err := test.OpenSqlite(ctx, t)
	is.NoErr(err)

	_, err = dbx.ExecContext(ctx, "CREATE TABLE things (id INTEGER PRIMARY KEY)")
	is.NoErr(err)

	boom := errors.New("boom")
	err = dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO things (id) VALUES (1)"); err != nil {
			return err
		}
		return boom
	})
	is.Equal(err, boom)

	var count int
	is.NoErr(dbx.GetContext(ctx, &count, "SELECT COUNT(*) FROM things"))
	is.Equal(count, 0)
}
