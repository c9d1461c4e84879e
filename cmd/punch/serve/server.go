package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/charmbracelet/punch/pkg/cron"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/jobs"
	"github.com/charmbracelet/punch/pkg/stats"
	"github.com/charmbracelet/punch/pkg/web"
	"golang.org/x/sync/errgroup"
)

// Server is the Punch server.
type Server struct {
	HTTPServer  *web.HTTPServer
	StatsServer *stats.StatsServer
	Cron        *cron.Scheduler
	Config      *config.Config
	Backend     *backend.Backend
	DB          *db.DB

	logger *log.Logger
	ctx    context.Context
}

// NewServer returns a new *Server. The token signing key-pair will be
// created if none exists.
// It expects a context with *backend.Backend, *db.DB, *log.Logger, and
// *config.Config attached.
func NewServer(ctx context.Context) (*Server, error) {
	var err error
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("server")
	srv := &Server{
		Config:  cfg,
		Backend: backend.FromContext(ctx),
		DB:      db.FromContext(ctx),
		logger:  logger,
		ctx:     ctx,
	}

	// Add cron jobs.
	sched := cron.NewScheduler(ctx)
	for _, j := range jobs.List() {
		spec := j.Runner.Spec(ctx)
		if spec == "" {
			continue
		}
		id, err := sched.AddFunc(j.Name, spec, j.Runner.Func(ctx))
		if err != nil {
			logger.Warn("error adding cron job", "job", j.Name, "err", err)
			continue
		}

		j.ID = id
	}

	srv.Cron = sched

	srv.HTTPServer, err = web.NewHTTPServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	srv.StatsServer, err = stats.NewStatsServer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create stats server: %w", err)
	}

	return srv, nil
}

// Start starts the servers and the scheduler.
func (s *Server) Start() error {
	errg, _ := errgroup.WithContext(s.ctx)

	errg.Go(func() error {
		s.logger.Print("Starting HTTP server", "addr", s.Config.HTTP.ListenAddr)
		if err := s.HTTPServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// optionally start the Stats server
	if s.Config.Stats.Enabled {
		errg.Go(func() error {
			s.logger.Print("Starting Stats server", "addr", s.Config.Stats.ListenAddr)
			if err := s.StatsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	errg.Go(func() error {
		s.Cron.Start()
		return nil
	})
	return errg.Wait()
}

// Shutdown lets the server gracefully shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.Go(func() error {
		return s.HTTPServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		return s.StatsServer.Shutdown(ctx)
	})
	errg.Go(func() error {
		for _, j := range jobs.List() {
			if j.ID != 0 {
				s.Cron.Remove(j.ID)
			}
		}
		s.Cron.Shutdown()
		return nil
	})
	return errg.Wait()
}

// Close closes the servers immediately.
func (s *Server) Close() error {
	var errg errgroup.Group
	errg.Go(s.HTTPServer.Close)
	errg.Go(s.StatsServer.Close)
	errg.Go(func() error {
		s.Cron.Stop()
		return nil
	})
	return errg.Wait()
}
