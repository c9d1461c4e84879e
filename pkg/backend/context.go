package backend

import (
	"context"

	"github.com/charmbracelet/punch/pkg/proto"
)

type contextKey struct{}

// FromContext returns the backend attached to ctx, or nil.
func FromContext(ctx context.Context) *Backend {
	b, _ := ctx.Value(contextKey{}).(*Backend)
	return b
}

// WithContext attaches the backend to ctx.
func WithContext(ctx context.Context, b *Backend) context.Context {
	return context.WithValue(ctx, contextKey{}, b)
}

// Caller returns the backend and the user acting in ctx. The user is nil
// for unauthenticated contexts, which every operation rejects with
// proto.ErrUnauthenticated.
func Caller(ctx context.Context) (*Backend, proto.User) {
	return FromContext(ctx), proto.UserFromContext(ctx)
}
