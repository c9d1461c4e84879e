package backend

import (
	"context"
	"strings"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/charmbracelet/punch/pkg/schema"
	"github.com/charmbracelet/punch/pkg/store"
	"github.com/charmbracelet/punch/pkg/worktime"
)

// AdjustmentFilter narrows an adjustment listing.
type AdjustmentFilter struct {
	UserID    int64
	TeamID    int64
	RequestID int64
	// From and To bound the effective date to [From, To), as YYYY-MM-DD.
	From  string
	To    string
	Limit int
}

// CreateAdjustment records a time adjustment for a member of a team.
func (d *Backend) CreateAdjustment(ctx context.Context, caller proto.User, in *schema.CreateAdjustment) (models.Adjustment, error) {
	if caller == nil {
		return models.Adjustment{}, proto.ErrUnauthenticated
	}
	if err := schema.Validate(in); err != nil {
		return models.Adjustment{}, err
	}

	date, _ := worktime.NormalizeDate(in.EffectiveDate)
	adj := models.Adjustment{
		UserID:        in.UserID,
		TeamID:        in.TeamID,
		CreatedBy:     caller.ID(),
		Type:          models.AdjustmentType(in.Type),
		Minutes:       *in.Minutes,
		EffectiveDate: date,
		Description:   strings.TrimSpace(in.Description),
	}

	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.requireRole(ctx, tx, caller, in.TeamID, access.ManagerRole); err != nil {
			return err
		}

		role, err := d.membership(ctx, tx, in.UserID, in.TeamID)
		if err != nil {
			return err
		}
		if role == access.NoAccess {
			return proto.ErrForbidden
		}

		if in.RequestID != nil {
			r, err := d.store.GetRequestByID(ctx, tx, *in.RequestID)
			if err != nil {
				return notFound(err, proto.ErrRequestNotFound)
			}
			if r.Status != models.StatusApproved {
				return proto.ErrRequestNotApproved
			}
			if r.UserID != in.UserID || r.TeamID != in.TeamID {
				return proto.ErrRequestMismatch
			}
			adj.RequestID.Int64, adj.RequestID.Valid = r.ID, true
		}

		adj, err = d.store.CreateAdjustment(ctx, tx, adj)
		return err
	})
	if err != nil {
		return models.Adjustment{}, err
	}

	transitionCounter.WithLabelValues("adjustment_create").Inc()
	d.logger.Info("created adjustment", "id", adj.ID, "user", adj.UserID, "team", adj.TeamID, "type", adj.Type, "minutes", adj.Minutes, "by", caller.ID())
	return adj, nil
}

// AmendAdjustment changes the given fields of an adjustment. The linked
// request is not checked again.
func (d *Backend) AmendAdjustment(ctx context.Context, caller proto.User, id int64, in *schema.AmendAdjustment) (models.Adjustment, error) {
	if caller == nil {
		return models.Adjustment{}, proto.ErrUnauthenticated
	}
	if err := schema.Validate(in); err != nil {
		return models.Adjustment{}, err
	}

	var adj models.Adjustment
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		adj, err = d.store.GetAdjustmentByID(ctx, tx, id)
		if err != nil {
			return notFound(err, proto.ErrAdjustmentNotFound)
		}

		if _, err := d.requireRole(ctx, tx, caller, adj.TeamID, access.ManagerRole); err != nil {
			return err
		}

		if in.Type != nil {
			adj.Type = models.AdjustmentType(*in.Type)
		}
		if in.Minutes != nil {
			adj.Minutes = *in.Minutes
		}
		if in.EffectiveDate != nil {
			adj.EffectiveDate, _ = worktime.NormalizeDate(*in.EffectiveDate)
		}
		if in.Description != nil {
			adj.Description = strings.TrimSpace(*in.Description)
		}
		if adj.Type == models.AdjustOverride && adj.Minutes < 0 {
			return schema.Invalid("minutes", "override_gte", "minutes must not be negative for OVERRIDE adjustments")
		}

		if err := d.store.UpdateAdjustment(ctx, tx, adj); err != nil {
			return notFound(err, proto.ErrAdjustmentNotFound)
		}

		adj, err = d.store.GetAdjustmentByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return models.Adjustment{}, err
	}

	transitionCounter.WithLabelValues("adjustment_amend").Inc()
	d.logger.Info("amended adjustment", "id", adj.ID, "by", caller.ID())
	return adj, nil
}

// Adjustments lists adjustments ordered by effective date. Managers of a
// team see every adjustment of the team, everybody else only their own.
func (d *Backend) Adjustments(ctx context.Context, caller proto.User, filter AdjustmentFilter) ([]models.Adjustment, error) {
	if caller == nil {
		return nil, proto.ErrUnauthenticated
	}

	sf := store.AdjustmentFilter{
		UserID:    filter.UserID,
		TeamID:    filter.TeamID,
		RequestID: filter.RequestID,
		From:      filter.From,
		To:        filter.To,
		Limit:     filter.Limit,
	}

	if !d.IsSuperadmin(caller) {
		manager := false
		if filter.TeamID > 0 {
			role, err := d.requireRole(ctx, d.db, caller, filter.TeamID, access.MemberRole)
			if err != nil {
				return nil, err
			}
			manager = role.CanManage()
		}
		if !manager {
			if filter.UserID != 0 && filter.UserID != caller.ID() {
				return nil, proto.ErrForbidden
			}
			sf.UserID = caller.ID()
		}
	}

	return d.store.ListAdjustments(ctx, d.db, sf)
}
