package backend

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/store"
)

// Clock tells the backend what time it is.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Backend is the Punch backend that handles users, teams, recorded time,
// and correction requests.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	logger *log.Logger
	cache  *cache
	clock  Clock
}

// Option configures a Backend.
type Option func(*Backend)

// WithClock sets the clock used to stamp transitions.
func WithClock(c Clock) Option {
	return func(b *Backend) {
		b.clock = c
	}
}

// New returns a new Punch backend.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store, opts ...Option) *Backend {
	logger := log.FromContext(ctx).WithPrefix("backend")
	b := &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		store:  st,
		logger: logger,
		clock:  realClock{},
	}

	for _, opt := range opts {
		opt(b)
	}

	b.cache = newCache(b, 1000)

	return b
}

// now returns the current time in UTC with second precision, which is what
// the database keeps.
func (d *Backend) now() time.Time {
	return d.clock.Now().UTC().Truncate(time.Second)
}

// DB returns the backend database.
func (d *Backend) DB() *db.DB {
	return d.db
}

// Store returns the backend store.
func (d *Backend) Store() store.Store {
	return d.store
}
