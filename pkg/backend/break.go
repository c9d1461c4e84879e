package backend

import (
	"context"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/charmbracelet/punch/pkg/schema"
)

// StartBreak opens a break in one of the caller's open sessions.
func (d *Backend) StartBreak(ctx context.Context, caller proto.User, sessionID int64, typ models.BreakType) (models.BreakSegment, error) {
	if caller == nil {
		return models.BreakSegment{}, proto.ErrUnauthenticated
	}
	if !typ.IsValid() {
		return models.BreakSegment{}, schema.Invalid("break_type", "oneof", "break_type must be one of [BREAK LUNCH]")
	}

	var seg models.BreakSegment
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		s, err := d.ownSession(ctx, tx, caller, sessionID)
		if err != nil {
			return err
		}
		if !s.IsOpen() {
			return proto.ErrSessionClosed
		}

		if _, err := d.store.GetOpenBreakBySession(ctx, tx, s.ID); err == nil {
			return proto.ErrBreakOpen
		} else if !isNotFound(err) {
			return err
		}

		seg, err = d.store.CreateBreak(ctx, tx, s.ID, typ, d.now())
		switch {
		case isDuplicate(err):
			return proto.ErrBreakOpen
		case isConstraint(err):
			return proto.ErrSessionClosed
		}
		return err
	})
	if err != nil {
		return models.BreakSegment{}, err
	}

	transitionCounter.WithLabelValues("break_start").Inc()
	d.logger.Debug("started break", "user", caller.ID(), "session", sessionID, "break", seg.ID, "type", typ)
	return seg, nil
}

// EndBreak ends an open break of the caller.
func (d *Backend) EndBreak(ctx context.Context, caller proto.User, breakID int64) (models.BreakSegment, error) {
	if caller == nil {
		return models.BreakSegment{}, proto.ErrUnauthenticated
	}

	var seg models.BreakSegment
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		b, err := d.store.GetBreakByID(ctx, tx, breakID)
		if err != nil {
			return notFound(err, proto.ErrBreakNotFound)
		}

		s, err := d.store.GetSessionByID(ctx, tx, b.SessionID)
		if err != nil {
			return notFound(err, proto.ErrSessionNotFound)
		}
		if s.UserID != caller.ID() {
			return proto.ErrForbidden
		}
		if !b.IsOpen() {
			return proto.ErrBreakEnded
		}

		ok, err := d.store.CloseBreak(ctx, tx, b.ID, d.now())
		if err != nil {
			if isConstraint(err) {
				return proto.ErrBreakEnded
			}
			return err
		}
		if !ok {
			return proto.ErrBreakEnded
		}

		seg, err = d.store.GetBreakByID(ctx, tx, b.ID)
		return err
	})
	if err != nil {
		return models.BreakSegment{}, err
	}

	transitionCounter.WithLabelValues("break_end").Inc()
	d.logger.Debug("ended break", "user", caller.ID(), "break", seg.ID)
	return seg, nil
}

// Breaks lists the breaks of a session. The session owner and managers of
// the session's team may list them.
func (d *Backend) Breaks(ctx context.Context, caller proto.User, sessionID int64) ([]models.BreakSegment, error) {
	if caller == nil {
		return nil, proto.ErrUnauthenticated
	}

	s, err := d.store.GetSessionByID(ctx, d.db, sessionID)
	if err != nil {
		return nil, notFound(err, proto.ErrSessionNotFound)
	}

	if s.UserID != caller.ID() {
		if _, err := d.requireRole(ctx, d.db, caller, s.TeamID, access.ManagerRole); err != nil {
			if err == proto.ErrForbidden {
				return nil, proto.ErrSessionNotFound
			}
			return nil, err
		}
	}

	return d.store.ListBreaksBySession(ctx, d.db, s.ID)
}
