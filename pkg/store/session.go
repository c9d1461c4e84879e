package store

import (
	"context"
	"time"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
)

// SessionFilter narrows a session listing. Zero values don't filter.
type SessionFilter struct {
	UserID int64
	TeamID int64
	// From and To bound clock_in to [From, To).
	From     time.Time
	To       time.Time
	OpenOnly bool
	Limit    int
}

// SessionStore is an interface for managing time sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, h db.Handler, userID int64, teamID int64, clockIn time.Time) (models.TimeSession, error)
	GetSessionByID(ctx context.Context, h db.Handler, id int64) (models.TimeSession, error)
	GetOpenSessionByUser(ctx context.Context, h db.Handler, userID int64) (models.TimeSession, error)
	// CloseSession sets clock_out on an open session. It reports false when
	// the session was already closed.
	CloseSession(ctx context.Context, h db.Handler, id int64, clockOut time.Time) (bool, error)
	// UpdateSessionTeam moves an open session to another team. It reports
	// false when the session was already closed.
	UpdateSessionTeam(ctx context.Context, h db.Handler, id int64, teamID int64) (bool, error)
	ListSessions(ctx context.Context, h db.Handler, filter SessionFilter) ([]models.TimeSession, error)
	CountOpenSessions(ctx context.Context, h db.Handler) (int64, error)
}
