package database

import (
	"context"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/store"
)

type adjustmentStore struct{}

var _ store.AdjustmentStore = (*adjustmentStore)(nil)

// CreateAdjustment implements store.AdjustmentStore.
func (s *adjustmentStore) CreateAdjustment(ctx context.Context, tx db.Handler, adj models.Adjustment) (models.Adjustment, error) {
	query := tx.Rebind(`INSERT INTO adjustments (request_id, user_id, team_id, created_by, adjustment_type, minutes, effective_date, description, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query,
		adj.RequestID, adj.UserID, adj.TeamID, adj.CreatedBy,
		adj.Type, adj.Minutes, adj.EffectiveDate, adj.Description,
	); err != nil {
		return models.Adjustment{}, err //nolint:wrapcheck
	}

	return s.GetAdjustmentByID(ctx, tx, id)
}

// GetAdjustmentByID implements store.AdjustmentStore.
func (*adjustmentStore) GetAdjustmentByID(ctx context.Context, tx db.Handler, id int64) (models.Adjustment, error) {
	var m models.Adjustment
	query := tx.Rebind(`SELECT * FROM adjustments WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// UpdateAdjustment implements store.AdjustmentStore.
func (*adjustmentStore) UpdateAdjustment(ctx context.Context, tx db.Handler, adj models.Adjustment) error {
	query := tx.Rebind(`UPDATE adjustments
			SET adjustment_type = ?, minutes = ?, effective_date = ?, description = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?;`)
	return execOne(ctx, tx, query, adj.Type, adj.Minutes, adj.EffectiveDate, adj.Description, adj.ID)
}

// ListAdjustments implements store.AdjustmentStore.
func (*adjustmentStore) ListAdjustments(ctx context.Context, tx db.Handler, filter store.AdjustmentFilter) ([]models.Adjustment, error) {
	var w where
	if filter.UserID > 0 {
		w.add("user_id = ?", filter.UserID)
	}
	if filter.TeamID > 0 {
		w.add("team_id = ?", filter.TeamID)
	}
	if filter.RequestID > 0 {
		w.add("request_id = ?", filter.RequestID)
	}
	if filter.From != "" {
		w.add("effective_date >= ?", filter.From)
	}
	if filter.To != "" {
		w.add("effective_date < ?", filter.To)
	}

	query, args := limit("SELECT * FROM adjustments"+w.String()+" ORDER BY effective_date, id", w.args, filter.Limit)

	var ms []models.Adjustment
	err := tx.SelectContext(ctx, &ms, tx.Rebind(query), args...)
	return ms, err //nolint:wrapcheck
}
