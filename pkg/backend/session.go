package backend

import (
	"context"
	"time"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/charmbracelet/punch/pkg/store"
)

// SessionFilter narrows a session listing.
type SessionFilter struct {
	TeamID int64
	From   time.Time
	To     time.Time
	Limit  int
}

// ClockIn opens a new session for the caller on a team.
func (d *Backend) ClockIn(ctx context.Context, caller proto.User, teamID int64) (models.TimeSession, error) {
	if caller == nil {
		return models.TimeSession{}, proto.ErrUnauthenticated
	}

	var sess models.TimeSession
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.store.GetOpenSessionByUser(ctx, tx, caller.ID()); err == nil {
			return proto.ErrAlreadyClockedIn
		} else if !isNotFound(err) {
			return err
		}

		if _, err := d.requireRole(ctx, tx, caller, teamID, access.MemberRole); err != nil {
			return err
		}

		var err error
		sess, err = d.store.CreateSession(ctx, tx, caller.ID(), teamID, d.now())
		if isDuplicate(err) {
			return proto.ErrAlreadyClockedIn
		}
		return err
	})
	if err != nil {
		return models.TimeSession{}, err
	}

	transitionCounter.WithLabelValues("clock_in").Inc()
	d.logger.Debug("clocked in", "user", caller.ID(), "team", teamID, "session", sess.ID)
	return sess, nil
}

// ClockOut closes one of the caller's open sessions. Any open break of the
// session ends at the same instant.
func (d *Backend) ClockOut(ctx context.Context, caller proto.User, sessionID int64) (models.TimeSession, error) {
	if caller == nil {
		return models.TimeSession{}, proto.ErrUnauthenticated
	}

	var sess models.TimeSession
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		s, err := d.ownSession(ctx, tx, caller, sessionID)
		if err != nil {
			return err
		}
		if !s.IsOpen() {
			return proto.ErrSessionClosed
		}

		now := d.now()
		if err := d.store.CloseOpenBreaksBySession(ctx, tx, s.ID, now); err != nil {
			return err
		}

		ok, err := d.store.CloseSession(ctx, tx, s.ID, now)
		if err != nil {
			if isConstraint(err) {
				return proto.ErrSessionClosed
			}
			return err
		}
		if !ok {
			return proto.ErrSessionClosed
		}

		sess, err = d.store.GetSessionByID(ctx, tx, s.ID)
		return err
	})
	if err != nil {
		return models.TimeSession{}, err
	}

	transitionCounter.WithLabelValues("clock_out").Inc()
	d.logger.Debug("clocked out", "user", caller.ID(), "session", sess.ID)
	return sess, nil
}

// SwitchTeam moves one of the caller's open sessions to another team. The
// session keeps its clock-in time.
func (d *Backend) SwitchTeam(ctx context.Context, caller proto.User, sessionID int64, teamID int64) (models.TimeSession, error) {
	if caller == nil {
		return models.TimeSession{}, proto.ErrUnauthenticated
	}

	var sess models.TimeSession
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		s, err := d.ownSession(ctx, tx, caller, sessionID)
		if err != nil {
			return err
		}
		if !s.IsOpen() {
			return proto.ErrSessionClosed
		}
		if s.TeamID == teamID {
			return proto.ErrSameTeam
		}

		if _, err := d.requireRole(ctx, tx, caller, teamID, access.MemberRole); err != nil {
			return err
		}

		ok, err := d.store.UpdateSessionTeam(ctx, tx, s.ID, teamID)
		if err != nil {
			if isConstraint(err) {
				return proto.ErrSessionClosed
			}
			return err
		}
		if !ok {
			return proto.ErrSessionClosed
		}

		sess, err = d.store.GetSessionByID(ctx, tx, s.ID)
		return err
	})
	if err != nil {
		return models.TimeSession{}, err
	}

	transitionCounter.WithLabelValues("switch_team").Inc()
	d.logger.Debug("switched team", "user", caller.ID(), "session", sess.ID, "team", teamID)
	return sess, nil
}

// ActiveSession returns the caller's open session.
func (d *Backend) ActiveSession(ctx context.Context, caller proto.User) (models.TimeSession, error) {
	if caller == nil {
		return models.TimeSession{}, proto.ErrUnauthenticated
	}

	s, err := d.store.GetOpenSessionByUser(ctx, d.db, caller.ID())
	if err != nil {
		return models.TimeSession{}, notFound(err, proto.ErrSessionNotFound)
	}
	return s, nil
}

// Sessions lists the caller's own sessions, newest first.
func (d *Backend) Sessions(ctx context.Context, caller proto.User, filter SessionFilter) ([]models.TimeSession, error) {
	if caller == nil {
		return nil, proto.ErrUnauthenticated
	}

	return d.store.ListSessions(ctx, d.db, store.SessionFilter{
		UserID: caller.ID(),
		TeamID: filter.TeamID,
		From:   filter.From,
		To:     filter.To,
		Limit:  filter.Limit,
	})
}

// TeamSessions lists the sessions recorded on a team. Managers and above
// only.
func (d *Backend) TeamSessions(ctx context.Context, caller proto.User, teamID int64, filter SessionFilter) ([]models.TimeSession, error) {
	if _, err := d.requireRole(ctx, d.db, caller, teamID, access.ManagerRole); err != nil {
		return nil, err
	}

	return d.store.ListSessions(ctx, d.db, store.SessionFilter{
		TeamID: teamID,
		From:   filter.From,
		To:     filter.To,
		Limit:  filter.Limit,
	})
}

// ownSession returns a session of the caller. Sessions of other users are
// reported as not found.
func (d *Backend) ownSession(ctx context.Context, h db.Handler, caller proto.User, id int64) (models.TimeSession, error) {
	s, err := d.store.GetSessionByID(ctx, h, id)
	if err != nil {
		return models.TimeSession{}, notFound(err, proto.ErrSessionNotFound)
	}
	if s.UserID != caller.ID() {
		return models.TimeSession{}, proto.ErrSessionNotFound
	}
	return s, nil
}
