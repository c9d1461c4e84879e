package web

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/charmbracelet/punch/pkg/jwk"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter returns a new HTTP router.
func NewRouter(ctx context.Context) (http.Handler, error) {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("http")
	router := mux.NewRouter()

	kp, err := jwk.NewPair(cfg)
	if err != nil {
		return nil, err
	}

	// Health routes
	HealthController(ctx, router)

	// Key set routes
	JWKSController(kp, router)

	// API routes
	APIController(ctx, kp, router)

	router.NotFoundHandler = http.HandlerFunc(renderNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(renderMethodNotAllowed)

	// Context handler
	// Adds context to the request
	h := NewLoggingMiddleware(router, logger)
	h = NewContextHandler(ctx)(h)
	h = NewRequestIDMiddleware(h)
	h = handlers.CompressHandler(h)
	if len(cfg.HTTP.CORS.AllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedHeaders(cfg.HTTP.CORS.AllowedHeaders),
			handlers.AllowedOrigins(cfg.HTTP.CORS.AllowedOrigins),
			handlers.AllowedMethods(cfg.HTTP.CORS.AllowedMethods),
		)(h)
	}
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})),
	)(h)

	return h, nil
}
