package jobs

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	openSessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "punch",
		Subsystem: "sessions",
		Name:      "open",
		Help:      "The number of users currently clocked in",
	})

	pendingRequestsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "punch",
		Subsystem: "requests",
		Name:      "pending",
		Help:      "The number of correction requests awaiting review",
	})
)

func init() {
	Register("stats", statsRefresh{})
}

// statsRefresh keeps the storage gauges current.
type statsRefresh struct{}

// Spec implements Runner.
func (statsRefresh) Spec(ctx context.Context) string {
	cfg := config.FromContext(ctx)
	if cfg == nil || !cfg.Stats.Enabled {
		return ""
	}
	return cfg.Jobs.Stats
}

// Func implements Runner.
func (statsRefresh) Func(ctx context.Context) func() {
	logger := log.FromContext(ctx).WithPrefix("jobs.stats")
	b := backend.FromContext(ctx)
	return func() {
		open, err := b.Store().CountOpenSessions(ctx, b.DB())
		if err != nil {
			logger.Error("error counting open sessions", "err", err)
			return
		}

		pending, err := b.Store().CountPendingRequests(ctx, b.DB())
		if err != nil {
			logger.Error("error counting pending requests", "err", err)
			return
		}

		openSessionsGauge.Set(float64(open))
		pendingRequestsGauge.Set(float64(pending))
		logger.Debug("refreshed stats", "open_sessions", open, "pending_requests", pending)
	}
}
