package backend

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/matryer/is"
)

func TestClockInOnce(t *testing.T) {
	is := is.New(t)
	f := setup(t)
	ctx, b := f.ctx, f.b

	sess, err := b.ClockIn(ctx, f.bob, f.core.ID())
	is.NoErr(err)
	is.True(sess.IsOpen())
	is.Equal(sess.UserID, f.bob.ID())
	is.Equal(sess.TeamID, f.core.ID())
	is.True(sess.ClockIn.Equal(f.clock.Now()))

	_, err = b.ClockIn(ctx, f.bob, f.core.ID())
	is.True(errors.Is(err, proto.ErrAlreadyClockedIn))
	is.True(errors.Is(err, proto.ErrConflict))

	active, err := b.ActiveSession(ctx, f.bob)
	is.NoErr(err)
	is.Equal(active.ID, sess.ID)

	open, err := b.Store().CountOpenSessions(ctx, b.DB())
	is.NoErr(err)
	is.Equal(open, int64(1))
}

func TestClockInForbidden(t *testing.T) {
	is := is.New(t)
	f := setup(t)

	_, err := f.b.ClockIn(f.ctx, f.bob, f.ops.ID())
	is.True(errors.Is(err, proto.ErrForbidden))

	_, err = f.b.ClockIn(f.ctx, nil, f.core.ID())
	is.True(errors.Is(err, proto.ErrUnauthenticated))

	_, err = f.b.ActiveSession(f.ctx, f.bob)
	is.True(errors.Is(err, proto.ErrSessionNotFound))
}

func TestClockOutOnce(t *testing.T) {
	is := is.New(t)
	f := setup(t)
	ctx, b := f.ctx, f.b

	sess, err := b.ClockIn(ctx, f.bob, f.core.ID())
	is.NoErr(err)

	f.clock.Advance(8 * time.Hour)
	closed, err := b.ClockOut(ctx, f.bob, sess.ID)
	is.NoErr(err)
	is.True(!closed.IsOpen())
	is.True(closed.ClockOut.Time.Equal(f.clock.Now()))

	f.clock.Advance(time.Hour)
	_, err = b.ClockOut(ctx, f.bob, sess.ID)
	is.True(errors.Is(err, proto.ErrSessionClosed))
	is.True(errors.Is(err, proto.ErrConflict))

	again, err := b.Store().GetSessionByID(ctx, b.DB(), sess.ID)
	is.NoErr(err)
	is.True(again.ClockOut.Time.Equal(closed.ClockOut.Time))

	// A new session may start once the previous one is closed.
	_, err = b.ClockIn(ctx, f.bob, f.core.ID())
	is.NoErr(err)
}

func TestClockOutOtherUser(t *testing.T) {
	is := is.New(t)
	f := setup(t)

	sess, err := f.b.ClockIn(f.ctx, f.bob, f.core.ID())
	is.NoErr(err)

	_, err = f.b.ClockOut(f.ctx, f.alice, sess.ID)
	is.True(errors.Is(err, proto.ErrSessionNotFound))

	_, err = f.b.ClockOut(f.ctx, f.bob, 9999)
	is.True(errors.Is(err, proto.ErrSessionNotFound))
	is.True(errors.Is(err, proto.ErrNotFound))
}

func TestClockOutEndsOpenBreak(t *testing.T) {
	is := is.New(t)
	f := setup(t)
	ctx, b := f.ctx, f.b

	sess, err := b.ClockIn(ctx, f.bob, f.core.ID())
	is.NoErr(err)
	f.clock.Advance(2 * time.Hour)
	brk, err := b.StartBreak(ctx, f.bob, sess.ID, "BREAK")
	is.NoErr(err)

	f.clock.Advance(15 * time.Minute)
	closed, err := b.ClockOut(ctx, f.bob, sess.ID)
	is.NoErr(err)

	ended, err := b.Store().GetBreakByID(ctx, b.DB(), brk.ID)
	is.NoErr(err)
	is.True(!ended.IsOpen())
	is.True(ended.BreakEnd.Time.Equal(closed.ClockOut.Time))
}

func TestSwitchTeam(t *testing.T) {
	is := is.New(t)
	f := setup(t)
	ctx, b := f.ctx, f.b

	sess, err := b.ClockIn(ctx, f.bob, f.core.ID())
	is.NoErr(err)

	_, err = b.SwitchTeam(ctx, f.bob, sess.ID, f.core.ID())
	is.True(errors.Is(err, proto.ErrSameTeam))
	is.True(errors.Is(err, proto.ErrConflict))

	_, err = b.SwitchTeam(ctx, f.bob, sess.ID, f.ops.ID())
	is.True(errors.Is(err, proto.ErrForbidden))

	_, err = b.AddTeamMember(ctx, f.dave, f.ops.ID(), f.bob.ID(), access.MemberRole)
	is.NoErr(err)

	f.clock.Advance(time.Hour)
	switched, err := b.SwitchTeam(ctx, f.bob, sess.ID, f.ops.ID())
	is.NoErr(err)
	is.Equal(switched.ID, sess.ID)
	is.Equal(switched.TeamID, f.ops.ID())
	is.True(switched.ClockIn.Equal(sess.ClockIn))
	is.True(switched.IsOpen())

	_, err = b.ClockOut(ctx, f.bob, sess.ID)
	is.NoErr(err)

	_, err = b.SwitchTeam(ctx, f.bob, sess.ID, f.core.ID())
	is.True(errors.Is(err, proto.ErrSessionClosed))
}

func TestSessionListings(t *testing.T) {
	is := is.New(t)
	f := setup(t)
	ctx, b := f.ctx, f.b

	for i := 0; i < 3; i++ {
		sess, err := b.ClockIn(ctx, f.bob, f.core.ID())
		is.NoErr(err)
		f.clock.Advance(time.Hour)
		_, err = b.ClockOut(ctx, f.bob, sess.ID)
		is.NoErr(err)
		f.clock.Advance(24 * time.Hour)
	}

	own, err := b.Sessions(ctx, f.bob, SessionFilter{})
	is.NoErr(err)
	is.Equal(len(own), 3)
	is.True(own[0].ClockIn.After(own[1].ClockIn))

	limited, err := b.Sessions(ctx, f.bob, SessionFilter{Limit: 2})
	is.NoErr(err)
	is.Equal(len(limited), 2)

	ranged, err := b.Sessions(ctx, f.bob, SessionFilter{
		From: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
	})
	is.NoErr(err)
	is.Equal(len(ranged), 1)

	team, err := b.TeamSessions(ctx, f.carol, f.core.ID(), SessionFilter{})
	is.NoErr(err)
	is.Equal(len(team), 3)

	_, err = b.TeamSessions(ctx, f.bob, f.core.ID(), SessionFilter{})
	is.True(errors.Is(err, proto.ErrForbidden))
}
