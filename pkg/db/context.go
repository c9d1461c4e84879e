package db

import "context"

type contextKey struct{}

// FromContext returns the database handle attached to ctx, or nil. HTTP
// readiness checks and the CLI close hook look it up this way.
func FromContext(ctx context.Context) *DB {
	dbx, _ := ctx.Value(contextKey{}).(*DB)
	return dbx
}

// WithContext attaches the database handle to ctx.
func WithContext(ctx context.Context, dbx *DB) context.Context {
	return context.WithValue(ctx, contextKey{}, dbx)
}
