package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Handler runs queries against either the pool or an open transaction.
// Stores take a Handler so the same code works inside TransactionContext.
type Handler interface {
	DriverName() string
	Rebind(string) string

	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

var (
	_ Handler = (*DB)(nil)
	_ Handler = (*Tx)(nil)
)
