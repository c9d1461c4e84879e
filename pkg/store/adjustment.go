package store

import (
	"context"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
)

// AdjustmentFilter narrows an adjustment listing. Zero values don't filter.
type AdjustmentFilter struct {
	UserID    int64
	TeamID    int64
	RequestID int64
	// From and To bound effective_date to [From, To), as YYYY-MM-DD.
	From  string
	To    string
	Limit int
}

// AdjustmentStore is an interface for managing adjustments.
type AdjustmentStore interface {
	CreateAdjustment(ctx context.Context, h db.Handler, adj models.Adjustment) (models.Adjustment, error)
	GetAdjustmentByID(ctx context.Context, h db.Handler, id int64) (models.Adjustment, error)
	UpdateAdjustment(ctx context.Context, h db.Handler, adj models.Adjustment) error
	ListAdjustments(ctx context.Context, h db.Handler, filter AdjustmentFilter) ([]models.Adjustment, error)
}
