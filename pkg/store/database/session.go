package database

import (
	"context"
	"time"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/store"
)

type sessionStore struct{}

var _ store.SessionStore = (*sessionStore)(nil)

// CreateSession implements store.SessionStore.
func (s *sessionStore) CreateSession(ctx context.Context, tx db.Handler, userID int64, teamID int64, clockIn time.Time) (models.TimeSession, error) {
	query := tx.Rebind(`INSERT INTO time_sessions (user_id, team_id, clock_in, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, userID, teamID, clockIn.UTC()); err != nil {
		return models.TimeSession{}, err //nolint:wrapcheck
	}

	return s.GetSessionByID(ctx, tx, id)
}

// GetSessionByID implements store.SessionStore.
func (*sessionStore) GetSessionByID(ctx context.Context, tx db.Handler, id int64) (models.TimeSession, error) {
	var m models.TimeSession
	query := tx.Rebind(`SELECT * FROM time_sessions WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// GetOpenSessionByUser implements store.SessionStore.
func (*sessionStore) GetOpenSessionByUser(ctx context.Context, tx db.Handler, userID int64) (models.TimeSession, error) {
	var m models.TimeSession
	query := tx.Rebind(`SELECT * FROM time_sessions WHERE user_id = ? AND clock_out IS NULL;`)
	err := tx.GetContext(ctx, &m, query, userID)
	return m, err //nolint:wrapcheck
}

// CloseSession implements store.SessionStore.
func (*sessionStore) CloseSession(ctx context.Context, tx db.Handler, id int64, clockOut time.Time) (bool, error) {
	query := tx.Rebind(`UPDATE time_sessions SET clock_out = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND clock_out IS NULL;`)
	return execGuarded(ctx, tx, query, clockOut.UTC(), id)
}

// UpdateSessionTeam implements store.SessionStore.
func (*sessionStore) UpdateSessionTeam(ctx context.Context, tx db.Handler, id int64, teamID int64) (bool, error) {
	query := tx.Rebind(`UPDATE time_sessions SET team_id = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND clock_out IS NULL;`)
	return execGuarded(ctx, tx, query, teamID, id)
}

// ListSessions implements store.SessionStore.
func (*sessionStore) ListSessions(ctx context.Context, tx db.Handler, filter store.SessionFilter) ([]models.TimeSession, error) {
	var w where
	if filter.UserID > 0 {
		w.add("user_id = ?", filter.UserID)
	}
	if filter.TeamID > 0 {
		w.add("team_id = ?", filter.TeamID)
	}
	if !filter.From.IsZero() {
		w.add("clock_in >= ?", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		w.add("clock_in < ?", filter.To.UTC())
	}
	if filter.OpenOnly {
		w.add("clock_out IS NULL")
	}

	query, args := limit("SELECT * FROM time_sessions"+w.String()+" ORDER BY clock_in DESC, id DESC", w.args, filter.Limit)

	var ms []models.TimeSession
	err := tx.SelectContext(ctx, &ms, tx.Rebind(query), args...)
	return ms, err //nolint:wrapcheck
}

// CountOpenSessions implements store.SessionStore.
func (*sessionStore) CountOpenSessions(ctx context.Context, tx db.Handler) (int64, error) {
	var n int64
	query := tx.Rebind(`SELECT COUNT(*) FROM time_sessions WHERE clock_out IS NULL;`)
	err := tx.GetContext(ctx, &n, query)
	return n, err //nolint:wrapcheck
}
