package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/charmbracelet/punch/pkg/db"
)

// execOne runs an update that must touch exactly one row. No match is
// reported as sql.ErrNoRows.
func execOne(ctx context.Context, tx db.Handler, query string, args ...interface{}) error {
	ok, err := execGuarded(ctx, tx, query, args...)
	if err != nil {
		return err
	}
	if !ok {
		return sql.ErrNoRows
	}
	return nil
}

// execGuarded runs a conditional update and reports whether it matched a
// row.
func execGuarded(ctx context.Context, tx db.Handler, query string, args ...interface{}) (bool, error) {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err //nolint:wrapcheck
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err //nolint:wrapcheck
	}
	return n > 0, nil
}

// where accumulates SQL conditions and their arguments.
type where struct {
	conds []string
	args  []interface{}
}

func (w *where) add(cond string, args ...interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// limit appends a LIMIT clause when n is positive.
func limit(query string, args []interface{}, n int) (string, []interface{}) {
	if n > 0 {
		query += " LIMIT ?"
		args = append(args, n)
	}
	return query, args
}
