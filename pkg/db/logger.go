package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
)

// statement returns the verb and the table a query works on, e.g.
// ("update", "time_sessions").
func statement(query string) (verb string, table string) {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "", ""
	}
	verb = strings.ToLower(fields[0])
	if verb == "with" {
		verb = "select"
	}

	marker := "from"
	switch verb {
	case "insert":
		marker = "into"
	case "update":
		return verb, tableName(fields, 1)
	case "create", "drop", "alter":
		marker = "table"
	}
	for i, f := range fields {
		if strings.EqualFold(f, marker) {
			return verb, tableName(fields, i+1)
		}
	}
	return verb, ""
}

func tableName(fields []string, i int) string {
	// Skip IF [NOT] EXISTS.
	for i < len(fields) {
		switch strings.ToLower(fields[i]) {
		case "if", "not", "exists":
			i++
			continue
		}
		return strings.Trim(fields[i], "\"`();")
	}
	return ""
}

// trace logs a finished query with its table, duration, and error. It is a
// no-op unless verbose logging set a logger.
func trace(l *log.Logger, start time.Time, query string, args []interface{}, errp *error) {
	if l == nil {
		return
	}
	verb, table := statement(query)
	kv := []interface{}{
		"op", verb,
		"table", table,
		"took", time.Since(start),
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
	}
	if errp != nil && *errp != nil {
		l.Debug("query failed", append(kv, "err", *errp)...)
		return
	}
	l.Debug("query", kv...)
}

// SelectContext runs sqlx's SelectContext on the pool and traces it.
func (d *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) (err error) {
	defer trace(d.logger, time.Now(), query, args, &err)
	return d.DB.SelectContext(ctx, dest, query, args...)
}

// GetContext runs sqlx's GetContext on the pool and traces it.
func (d *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) (err error) {
	defer trace(d.logger, time.Now(), query, args, &err)
	return d.DB.GetContext(ctx, dest, query, args...)
}

// QueryxContext runs sqlx's QueryxContext on the pool and traces it.
func (d *DB) QueryxContext(ctx context.Context, query string, args ...interface{}) (rows *sqlx.Rows, err error) {
	defer trace(d.logger, time.Now(), query, args, &err)
	return d.DB.QueryxContext(ctx, query, args...)
}

// QueryRowxContext runs sqlx's QueryRowxContext on the pool and traces it.
func (d *DB) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	defer trace(d.logger, time.Now(), query, args, nil)
	return d.DB.QueryRowxContext(ctx, query, args...)
}

// ExecContext runs sqlx's ExecContext on the pool and traces it.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (res sql.Result, err error) {
	defer trace(d.logger, time.Now(), query, args, &err)
	return d.DB.ExecContext(ctx, query, args...)
}

// SelectContext runs sqlx's SelectContext on the transaction and traces it.
func (t *Tx) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) (err error) {
	defer trace(t.logger, time.Now(), query, args, &err)
	return t.Tx.SelectContext(ctx, dest, query, args...)
}

// GetContext runs sqlx's GetContext on the transaction and traces it.
func (t *Tx) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) (err error) {
	defer trace(t.logger, time.Now(), query, args, &err)
	return t.Tx.GetContext(ctx, dest, query, args...)
}

// QueryxContext runs sqlx's QueryxContext on the transaction and traces it.
func (t *Tx) QueryxContext(ctx context.Context, query string, args ...interface{}) (rows *sqlx.Rows, err error) {
	defer trace(t.logger, time.Now(), query, args, &err)
	return t.Tx.QueryxContext(ctx, query, args...)
}

// QueryRowxContext runs sqlx's QueryRowxContext on the transaction and traces it.
func (t *Tx) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	defer trace(t.logger, time.Now(), query, args, nil)
	return t.Tx.QueryRowxContext(ctx, query, args...)
}

// ExecContext runs sqlx's ExecContext on the transaction and traces it.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (res sql.Result, err error) {
	defer trace(t.logger, time.Now(), query, args, &err)
	return t.Tx.ExecContext(ctx, query, args...)
}
