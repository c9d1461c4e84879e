package database

import (
	"context"
	"time"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/store"
	"github.com/jmoiron/sqlx"
)

type requestStore struct{}

var _ store.RequestStore = (*requestStore)(nil)

// CreateRequest implements store.RequestStore.
func (s *requestStore) CreateRequest(ctx context.Context, tx db.Handler, userID int64, teamID int64, typ models.RequestType, description string, payload string) (models.CorrectionRequest, error) {
	query := tx.Rebind(`INSERT INTO correction_requests (user_id, team_id, request_type, description, payload, status, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, userID, teamID, typ, description, payload, models.StatusPending); err != nil {
		return models.CorrectionRequest{}, err //nolint:wrapcheck
	}

	return s.GetRequestByID(ctx, tx, id)
}

// GetRequestByID implements store.RequestStore.
func (*requestStore) GetRequestByID(ctx context.Context, tx db.Handler, id int64) (models.CorrectionRequest, error) {
	var m models.CorrectionRequest
	query := tx.Rebind(`SELECT * FROM correction_requests WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// ListRequests implements store.RequestStore.
func (*requestStore) ListRequests(ctx context.Context, tx db.Handler, filter store.RequestFilter) ([]models.CorrectionRequest, error) {
	var w where
	if filter.UserID > 0 {
		w.add("user_id = ?", filter.UserID)
	}
	if filter.TeamID > 0 {
		w.add("team_id = ?", filter.TeamID)
	}
	if filter.Status != "" {
		w.add("status = ?", filter.Status)
	}
	if filter.TeamIDs != nil {
		if len(filter.TeamIDs) == 0 {
			return []models.CorrectionRequest{}, nil
		}
		cond, args, err := sqlx.In("team_id IN (?)", filter.TeamIDs)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		w.add(cond, args...)
	}

	query, args := limit("SELECT * FROM correction_requests"+w.String()+" ORDER BY created_at DESC, id DESC", w.args, filter.Limit)

	var ms []models.CorrectionRequest
	err := tx.SelectContext(ctx, &ms, tx.Rebind(query), args...)
	return ms, err //nolint:wrapcheck
}

// ReviewRequest implements store.RequestStore.
func (*requestStore) ReviewRequest(ctx context.Context, tx db.Handler, id int64, status models.RequestStatus, reviewerID int64, notes string, reviewedAt time.Time) (bool, error) {
	query := tx.Rebind(`UPDATE correction_requests
			SET status = ?, reviewer_id = ?, review_notes = ?, reviewed_at = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?;`)
	return execGuarded(ctx, tx, query, status, reviewerID, notes, reviewedAt.UTC(), id, models.StatusPending)
}

// CountPendingRequests implements store.RequestStore.
func (*requestStore) CountPendingRequests(ctx context.Context, tx db.Handler) (int64, error) {
	var n int64
	query := tx.Rebind(`SELECT COUNT(*) FROM correction_requests WHERE status = ?;`)
	err := tx.GetContext(ctx, &n, query, models.StatusPending)
	return n, err //nolint:wrapcheck
}

type commentStore struct{}

var _ store.CommentStore = (*commentStore)(nil)

// CreateComment implements store.CommentStore.
func (*commentStore) CreateComment(ctx context.Context, tx db.Handler, requestID int64, authorID int64, content string) (models.Comment, error) {
	query := tx.Rebind(`INSERT INTO request_comments (request_id, author_id, content)
			VALUES (?, ?, ?) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, requestID, authorID, content); err != nil {
		return models.Comment{}, err //nolint:wrapcheck
	}

	var m models.Comment
	err := tx.GetContext(ctx, &m, tx.Rebind(`SELECT * FROM request_comments WHERE id = ?;`), id)
	return m, err //nolint:wrapcheck
}

// ListCommentsByRequest implements store.CommentStore.
func (*commentStore) ListCommentsByRequest(ctx context.Context, tx db.Handler, requestID int64) ([]models.Comment, error) {
	var ms []models.Comment
	query := tx.Rebind(`SELECT * FROM request_comments WHERE request_id = ? ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query, requestID)
	return ms, err //nolint:wrapcheck
}
