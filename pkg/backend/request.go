package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/charmbracelet/punch/pkg/schema"
	"github.com/charmbracelet/punch/pkg/store"
	"github.com/charmbracelet/punch/pkg/worktime"
)

// RequestFilter narrows a request listing.
type RequestFilter struct {
	// TeamID lists the requests of a team. Managers see every request of
	// the team, members only their own.
	TeamID int64
	// Managed lists the requests of every team the caller manages.
	Managed bool
	Status  models.RequestStatus
	Limit   int
}

// SubmitRequest files a correction request on a team the caller belongs to.
func (d *Backend) SubmitRequest(ctx context.Context, caller proto.User, in *schema.SubmitRequest) (models.CorrectionRequest, error) {
	if caller == nil {
		return models.CorrectionRequest{}, proto.ErrUnauthenticated
	}
	if err := schema.Validate(in); err != nil {
		return models.CorrectionRequest{}, err
	}
	if err := in.ValidatePayload(); err != nil {
		return models.CorrectionRequest{}, err
	}

	var payload bytes.Buffer
	if err := json.Compact(&payload, in.Payload); err != nil {
		return models.CorrectionRequest{}, schema.Invalid("payload", "json", "payload must be a JSON object")
	}

	var req models.CorrectionRequest
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.requireRole(ctx, tx, caller, in.TeamID, access.MemberRole); err != nil {
			return err
		}

		var err error
		req, err = d.store.CreateRequest(ctx, tx, caller.ID(), in.TeamID, models.RequestType(in.Type), in.Description, payload.String())
		return err
	})
	if err != nil {
		return models.CorrectionRequest{}, err
	}

	transitionCounter.WithLabelValues("request_submit").Inc()
	d.logger.Info("submitted request", "id", req.ID, "user", caller.ID(), "team", req.TeamID, "type", req.Type)
	return req, nil
}

// Request returns a correction request. The requester and managers of the
// request's team may read it.
func (d *Backend) Request(ctx context.Context, caller proto.User, id int64) (models.CorrectionRequest, error) {
	if caller == nil {
		return models.CorrectionRequest{}, proto.ErrUnauthenticated
	}
	return d.visibleRequest(ctx, d.db, caller, id)
}

// Requests lists correction requests visible to the caller, newest first.
// Without a team or the managed flag only the caller's own requests are
// listed.
func (d *Backend) Requests(ctx context.Context, caller proto.User, filter RequestFilter) ([]models.CorrectionRequest, error) {
	if caller == nil {
		return nil, proto.ErrUnauthenticated
	}

	sf := store.RequestFilter{
		Status: filter.Status,
		Limit:  filter.Limit,
	}

	switch {
	case filter.TeamID > 0:
		role, err := d.requireRole(ctx, d.db, caller, filter.TeamID, access.MemberRole)
		if err != nil {
			return nil, err
		}
		sf.TeamID = filter.TeamID
		if !role.CanManage() {
			sf.UserID = caller.ID()
		}
	case filter.Managed:
		if !d.IsSuperadmin(caller) {
			ids, err := d.managedTeams(ctx, d.db, caller)
			if err != nil {
				return nil, err
			}
			sf.TeamIDs = ids
		}
	default:
		sf.UserID = caller.ID()
	}

	return d.store.ListRequests(ctx, d.db, sf)
}

// Comment appends a comment to a request. The requester and managers of the
// request's team may comment.
func (d *Backend) Comment(ctx context.Context, caller proto.User, requestID int64, in *schema.Comment) (models.Comment, error) {
	if caller == nil {
		return models.Comment{}, proto.ErrUnauthenticated
	}
	if err := schema.Validate(in); err != nil {
		return models.Comment{}, err
	}

	var c models.Comment
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		r, err := d.visibleRequest(ctx, tx, caller, requestID)
		if err != nil {
			return err
		}

		c, err = d.store.CreateComment(ctx, tx, r.ID, caller.ID(), in.Content)
		return err
	})
	if err != nil {
		return models.Comment{}, err
	}

	d.logger.Debug("commented on request", "request", requestID, "author", caller.ID(), "comment", c.ID)
	return c, nil
}

// Comments lists the comments of a request, oldest first.
func (d *Backend) Comments(ctx context.Context, caller proto.User, requestID int64) ([]models.Comment, error) {
	if caller == nil {
		return nil, proto.ErrUnauthenticated
	}

	r, err := d.visibleRequest(ctx, d.db, caller, requestID)
	if err != nil {
		return nil, err
	}

	return d.store.ListCommentsByRequest(ctx, d.db, r.ID)
}

// Review approves or rejects a pending request. An approval may derive an
// adjustment from the request; the review and the adjustment are written
// together or not at all.
func (d *Backend) Review(ctx context.Context, caller proto.User, requestID int64, in *schema.Review) (models.CorrectionRequest, *models.Adjustment, error) {
	if caller == nil {
		return models.CorrectionRequest{}, nil, proto.ErrUnauthenticated
	}
	if err := schema.Validate(in); err != nil {
		return models.CorrectionRequest{}, nil, err
	}

	var (
		req models.CorrectionRequest
		adj *models.Adjustment
	)
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		r, err := d.store.GetRequestByID(ctx, tx, requestID)
		if err != nil {
			return notFound(err, proto.ErrRequestNotFound)
		}

		if _, err := d.requireRole(ctx, tx, caller, r.TeamID, access.ManagerRole); err != nil {
			return err
		}

		if r.Status != models.StatusPending {
			return proto.ErrRequestReviewed
		}

		status := models.RequestStatus(in.Decision)
		ok, err := d.store.ReviewRequest(ctx, tx, r.ID, status, caller.ID(), in.Notes, d.now())
		if err != nil {
			if isConstraint(err) {
				return proto.ErrRequestReviewed
			}
			return err
		}
		if !ok {
			return proto.ErrRequestReviewed
		}

		if in.WantsAdjustment() {
			a, err := deriveAdjustment(r, in.Adjustment)
			if err != nil {
				return err
			}
			a.CreatedBy = caller.ID()

			created, err := d.store.CreateAdjustment(ctx, tx, a)
			if err != nil {
				return err
			}
			adj = &created
		}

		req, err = d.store.GetRequestByID(ctx, tx, r.ID)
		return err
	})
	if err != nil {
		return models.CorrectionRequest{}, nil, err
	}

	transitionCounter.WithLabelValues("request_review").Inc()
	reviewCounter.WithLabelValues(in.Decision, fmt.Sprint(adj != nil)).Inc()
	if adj != nil {
		transitionCounter.WithLabelValues("adjustment_create").Inc()
	}
	d.logger.Info("reviewed request", "id", req.ID, "status", req.Status, "by", caller.ID(), "adjusted", adj != nil)
	return req, adj, nil
}

// deriveAdjustment builds the adjustment of an approved request. Fields of
// o replace the derived ones.
func deriveAdjustment(r models.CorrectionRequest, o *schema.ReviewAdjustment) (models.Adjustment, error) {
	a := models.Adjustment{
		UserID:      r.UserID,
		TeamID:      r.TeamID,
		Description: fmt.Sprintf("%s request #%d", r.Type, r.ID),
	}
	a.RequestID.Int64, a.RequestID.Valid = r.ID, true

	derived, ok := worktime.DeriveAdjustment(r)
	if ok {
		a.Type = derived.Type
		a.Minutes = derived.Minutes
		a.EffectiveDate = derived.EffectiveDate
	} else {
		a.Type = worktime.AdjustmentTypeForRequest(r.Type)
		var data map[string]any
		if err := json.Unmarshal([]byte(r.Payload), &data); err == nil {
			a.EffectiveDate, _ = worktime.EffectiveDateFromRequestData(data)
		}
	}

	hasMinutes := ok
	if o != nil {
		if o.Type != "" {
			a.Type = models.AdjustmentType(o.Type)
		}
		if o.Minutes != nil {
			a.Minutes = *o.Minutes
			hasMinutes = true
		}
		if o.EffectiveDate != "" {
			a.EffectiveDate, _ = worktime.NormalizeDate(o.EffectiveDate)
		}
		if o.Description != "" {
			a.Description = o.Description
		}
	}

	if !hasMinutes || a.EffectiveDate == "" {
		return models.Adjustment{}, proto.ErrNotDerivable
	}
	if a.Type == models.AdjustOverride && a.Minutes < 0 {
		return models.Adjustment{}, schema.Invalid("adjustment.minutes", "override_gte", "adjustment.minutes must not be negative for OVERRIDE adjustments")
	}

	return a, nil
}

// visibleRequest returns a request the caller may read.
func (d *Backend) visibleRequest(ctx context.Context, h db.Handler, caller proto.User, id int64) (models.CorrectionRequest, error) {
	r, err := d.store.GetRequestByID(ctx, h, id)
	if err != nil {
		return models.CorrectionRequest{}, notFound(err, proto.ErrRequestNotFound)
	}

	if r.UserID == caller.ID() {
		return r, nil
	}

	if _, err := d.requireRole(ctx, h, caller, r.TeamID, access.ManagerRole); err != nil {
		return models.CorrectionRequest{}, err
	}

	return r, nil
}

// managedTeams returns the ids of the teams where the caller is a manager
// or admin.
func (d *Backend) managedTeams(ctx context.Context, h db.Handler, caller proto.User) ([]int64, error) {
	teams, err := d.store.ListTeamsByUser(ctx, h, caller.ID())
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(teams))
	for _, t := range teams {
		role, err := d.membership(ctx, h, caller.ID(), t.ID)
		if err != nil {
			return nil, err
		}
		if role.CanManage() {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}
