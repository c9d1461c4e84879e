// Package database implements the store interfaces on top of SQL.
package database

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/store"
)

type datastore struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	logger *log.Logger

	*userStore
	*teamStore
	*sessionStore
	*breakStore
	*requestStore
	*commentStore
	*adjustmentStore
}

var _ store.Store = (*datastore)(nil)

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		logger: logger,

		userStore:       &userStore{},
		teamStore:       &teamStore{},
		sessionStore:    &sessionStore{},
		breakStore:      &breakStore{},
		requestStore:    &requestStore{},
		commentStore:    &commentStore{},
		adjustmentStore: &adjustmentStore{},
	}

	return s
}
