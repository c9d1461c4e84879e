package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/charmbracelet/punch/pkg/jwk"
	"github.com/charmbracelet/punch/pkg/proto"
)

// authenticate resolves the user of a bearer token.
func authenticate(ctx context.Context, kp jwk.Pair, header string) (proto.User, error) {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("http.auth")

	if header == "" {
		logger.Debug("no authorization header")
		return nil, proto.ErrUnauthenticated
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, proto.ErrUnauthenticated
	}

	claims, err := kp.ParseToken(cfg, strings.TrimSpace(parts[1]))
	if err != nil {
		logger.Debug("failed to parse jwt", "err", err)
		return nil, proto.ErrUnauthenticated
	}

	email, id, err := jwk.ParseSubject(claims.Subject)
	if err != nil {
		logger.Debug("invalid jwt subject", "subject", claims.Subject)
		return nil, proto.ErrUnauthenticated
	}

	be := backend.FromContext(ctx)
	user, err := be.UserByID(ctx, id)
	if err != nil {
		logger.Debug("failed to get user", "id", id, "err", err)
		return nil, proto.ErrUnauthenticated
	}

	// A token outlives an email change only if the subject still matches.
	if !strings.EqualFold(user.Email(), email) {
		logger.Debug("invalid jwt subject", "subject", claims.Subject, "email", user.Email())
		return nil, proto.ErrUnauthenticated
	}

	return user, nil
}

// withAuth rejects requests without a valid bearer token and puts the
// authenticated user in the request context.
func withAuth(kp jwk.Pair) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			user, err := authenticate(ctx, kp, r.Header.Get("Authorization"))
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="punch"`)
				renderError(w, r, err)
				return
			}

			ctx = proto.WithUserContext(ctx, user)
			ctx = log.WithContext(ctx, log.FromContext(ctx).With("user", user.ID()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
