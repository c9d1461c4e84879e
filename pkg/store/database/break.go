package database

import (
	"context"
	"time"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/store"
	"github.com/jmoiron/sqlx"
)

type breakStore struct{}

var _ store.BreakStore = (*breakStore)(nil)

// CreateBreak implements store.BreakStore.
func (s *breakStore) CreateBreak(ctx context.Context, tx db.Handler, sessionID int64, breakType models.BreakType, start time.Time) (models.BreakSegment, error) {
	query := tx.Rebind(`INSERT INTO break_segments (session_id, break_type, break_start, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, sessionID, breakType, start.UTC()); err != nil {
		return models.BreakSegment{}, err //nolint:wrapcheck
	}

	return s.GetBreakByID(ctx, tx, id)
}

// GetBreakByID implements store.BreakStore.
func (*breakStore) GetBreakByID(ctx context.Context, tx db.Handler, id int64) (models.BreakSegment, error) {
	var m models.BreakSegment
	query := tx.Rebind(`SELECT * FROM break_segments WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// GetOpenBreakBySession implements store.BreakStore.
func (*breakStore) GetOpenBreakBySession(ctx context.Context, tx db.Handler, sessionID int64) (models.BreakSegment, error) {
	var m models.BreakSegment
	query := tx.Rebind(`SELECT * FROM break_segments WHERE session_id = ? AND break_end IS NULL;`)
	err := tx.GetContext(ctx, &m, query, sessionID)
	return m, err //nolint:wrapcheck
}

// CloseBreak implements store.BreakStore.
func (*breakStore) CloseBreak(ctx context.Context, tx db.Handler, id int64, end time.Time) (bool, error) {
	query := tx.Rebind(`UPDATE break_segments SET break_end = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND break_end IS NULL;`)
	return execGuarded(ctx, tx, query, end.UTC(), id)
}

// CloseOpenBreaksBySession implements store.BreakStore.
func (*breakStore) CloseOpenBreaksBySession(ctx context.Context, tx db.Handler, sessionID int64, end time.Time) error {
	query := tx.Rebind(`UPDATE break_segments SET break_end = ?, updated_at = CURRENT_TIMESTAMP
			WHERE session_id = ? AND break_end IS NULL;`)
	_, err := tx.ExecContext(ctx, query, end.UTC(), sessionID)
	return err //nolint:wrapcheck
}

// ListBreaksBySession implements store.BreakStore.
func (*breakStore) ListBreaksBySession(ctx context.Context, tx db.Handler, sessionID int64) ([]models.BreakSegment, error) {
	var ms []models.BreakSegment
	query := tx.Rebind(`SELECT * FROM break_segments WHERE session_id = ? ORDER BY break_start, id;`)
	err := tx.SelectContext(ctx, &ms, query, sessionID)
	return ms, err //nolint:wrapcheck
}

// ListBreaksBySessions implements store.BreakStore.
func (*breakStore) ListBreaksBySessions(ctx context.Context, tx db.Handler, sessionIDs []int64) ([]models.BreakSegment, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM break_segments WHERE session_id IN (?) ORDER BY break_start, id;`, sessionIDs)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	var ms []models.BreakSegment
	err = tx.SelectContext(ctx, &ms, tx.Rebind(query), args...)
	return ms, err //nolint:wrapcheck
}
