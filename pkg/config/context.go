package config

import "context"

type contextKey struct{}

// WithContext attaches the configuration to ctx.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the configuration attached to ctx. A nil *Config is
// safe to query for superadmins and reports none.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(contextKey{}).(*Config)
	return cfg
}
