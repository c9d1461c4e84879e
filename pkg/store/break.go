package store

import (
	"context"
	"time"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
)

// BreakStore is an interface for managing break segments.
type BreakStore interface {
	CreateBreak(ctx context.Context, h db.Handler, sessionID int64, breakType models.BreakType, start time.Time) (models.BreakSegment, error)
	GetBreakByID(ctx context.Context, h db.Handler, id int64) (models.BreakSegment, error)
	GetOpenBreakBySession(ctx context.Context, h db.Handler, sessionID int64) (models.BreakSegment, error)
	// CloseBreak sets break_end on an open break. It reports false when the
	// break had already ended.
	CloseBreak(ctx context.Context, h db.Handler, id int64, end time.Time) (bool, error)
	// CloseOpenBreaksBySession ends every open break of a session.
	CloseOpenBreaksBySession(ctx context.Context, h db.Handler, sessionID int64, end time.Time) error
	ListBreaksBySession(ctx context.Context, h db.Handler, sessionID int64) ([]models.BreakSegment, error)
	ListBreaksBySessions(ctx context.Context, h db.Handler, sessionIDs []int64) ([]models.BreakSegment, error)
}
