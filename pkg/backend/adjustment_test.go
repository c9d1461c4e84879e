package backend

import (
	"errors"
	"testing"

	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/charmbracelet/punch/pkg/schema"
	"github.com/matryer/is"
)

func createAdjustment(f *fixture, typ string, minutes int, date string) *schema.CreateAdjustment {
	return &schema.CreateAdjustment{
		UserID:        f.bob.ID(),
		TeamID:        f.core.ID(),
		Type:          typ,
		Minutes:       intp(minutes),
		EffectiveDate: date,
		Description:   "manual fix",
	}
}

func TestCreateAdjustment(t *testing.T) {
	is := is.New(t)
	f := setup(t)

	adj, err := f.b.CreateAdjustment(f.ctx, f.carol, createAdjustment(f, "SUBTRACT_TIME", 20, "2024-01-15T10:00:00Z"))
	is.NoErr(err)
	is.Equal(adj.Type, models.AdjustSubtractTime)
	is.Equal(adj.Minutes, 20)
	is.Equal(adj.EffectiveDate, "2024-01-15")
	is.Equal(adj.CreatedBy, f.carol.ID())
	is.True(!adj.RequestID.Valid)

	_, err = f.b.CreateAdjustment(f.ctx, f.bob, createAdjustment(f, "ADD_TIME", 20, "2024-01-15"))
	is.True(errors.Is(err, proto.ErrForbidden))

	in := createAdjustment(f, "ADD_TIME", 20, "2024-01-15")
	in.UserID = f.dave.ID()
	_, err = f.b.CreateAdjustment(f.ctx, f.carol, in)
	is.True(errors.Is(err, proto.ErrForbidden))

	_, err = f.b.CreateAdjustment(f.ctx, f.carol, createAdjustment(f, "OVERRIDE", -1, "2024-01-15"))
	var ve *schema.ValidationError
	is.True(errors.As(err, &ve))
	is.Equal(ve.Fields[0].Rule, "override_gte")

	// Negative minutes are fine for relative adjustments.
	_, err = f.b.CreateAdjustment(f.ctx, f.carol, createAdjustment(f, "ADD_TIME", -10, "2024-01-15"))
	is.NoErr(err)

	_, err = f.b.CreateAdjustment(f.ctx, f.root, createAdjustment(f, "OVERRIDE", 0, "2024-01-15"))
	is.NoErr(err)
}

func TestCreateAdjustmentSourceRequest(t *testing.T) {
	is := is.New(t)
	f := setup(t)
	r := submitMissedLunch(t, f, f.bob)

	in := createAdjustment(f, "SUBTRACT_TIME", 45, "2024-01-12")
	in.RequestID = int64p(r.ID)
	_, err := f.b.CreateAdjustment(f.ctx, f.carol, in)
	is.True(errors.Is(err, proto.ErrRequestNotApproved))
	is.True(errors.Is(err, proto.ErrPreconditionFailed))

	_, _, err = f.b.Review(f.ctx, f.carol, r.ID, &schema.Review{Decision: "REJECTED"})
	is.NoErr(err)
	_, err = f.b.CreateAdjustment(f.ctx, f.carol, in)
	is.True(errors.Is(err, proto.ErrRequestNotApproved))

	approved := submitMissedLunch(t, f, f.bob)
	_, _, err = f.b.Review(f.ctx, f.carol, approved.ID, &schema.Review{Decision: "APPROVED"})
	is.NoErr(err)

	in.RequestID = int64p(approved.ID)
	adj, err := f.b.CreateAdjustment(f.ctx, f.carol, in)
	is.NoErr(err)
	is.Equal(adj.RequestID.Int64, approved.ID)

	other := createAdjustment(f, "ADD_TIME", 5, "2024-01-12")
	other.UserID = f.carol.ID()
	other.RequestID = int64p(approved.ID)
	_, err = f.b.CreateAdjustment(f.ctx, f.alice, other)
	is.True(errors.Is(err, proto.ErrRequestMismatch))

	in.RequestID = int64p(9999)
	_, err = f.b.CreateAdjustment(f.ctx, f.carol, in)
	is.True(errors.Is(err, proto.ErrRequestNotFound))
}

func TestAmendAdjustment(t *testing.T) {
	is := is.New(t)
	f := setup(t)

	adj, err := f.b.CreateAdjustment(f.ctx, f.carol, createAdjustment(f, "ADD_TIME", 30, "2024-01-15"))
	is.NoErr(err)

	minutes := 45
	amended, err := f.b.AmendAdjustment(f.ctx, f.alice, adj.ID, &schema.AmendAdjustment{Minutes: &minutes})
	is.NoErr(err)
	is.Equal(amended.Minutes, 45)
	is.Equal(amended.Type, models.AdjustAddTime)
	is.Equal(amended.EffectiveDate, "2024-01-15")
	is.Equal(amended.Description, "manual fix")

	_, err = f.b.AmendAdjustment(f.ctx, f.bob, adj.ID, &schema.AmendAdjustment{Minutes: &minutes})
	is.True(errors.Is(err, proto.ErrForbidden))

	_, err = f.b.AmendAdjustment(f.ctx, f.carol, adj.ID, &schema.AmendAdjustment{})
	var ve *schema.ValidationError
	is.True(errors.As(err, &ve))

	// Switching to OVERRIDE re-checks the stored minutes.
	negative := -5
	_, err = f.b.AmendAdjustment(f.ctx, f.carol, adj.ID, &schema.AmendAdjustment{Minutes: &negative})
	is.NoErr(err)
	override := "OVERRIDE"
	_, err = f.b.AmendAdjustment(f.ctx, f.carol, adj.ID, &schema.AmendAdjustment{Type: &override})
	is.True(errors.As(err, &ve))

	date := "2024-13-01"
	_, err = f.b.AmendAdjustment(f.ctx, f.carol, adj.ID, &schema.AmendAdjustment{EffectiveDate: &date})
	is.True(errors.As(err, &ve))

	_, err = f.b.AmendAdjustment(f.ctx, f.carol, 9999, &schema.AmendAdjustment{Minutes: &minutes})
	is.True(errors.Is(err, proto.ErrAdjustmentNotFound))
}

func TestAdjustmentListings(t *testing.T) {
	is := is.New(t)
	f := setup(t)

	_, err := f.b.CreateAdjustment(f.ctx, f.carol, createAdjustment(f, "ADD_TIME", 30, "2024-01-15"))
	is.NoErr(err)
	in := createAdjustment(f, "ADD_TIME", 10, "2024-01-20")
	in.UserID = f.carol.ID()
	_, err = f.b.CreateAdjustment(f.ctx, f.alice, in)
	is.NoErr(err)

	own, err := f.b.Adjustments(f.ctx, f.bob, AdjustmentFilter{})
	is.NoErr(err)
	is.Equal(len(own), 1)

	team, err := f.b.Adjustments(f.ctx, f.bob, AdjustmentFilter{TeamID: f.core.ID()})
	is.NoErr(err)
	is.Equal(len(team), 1)

	team, err = f.b.Adjustments(f.ctx, f.carol, AdjustmentFilter{TeamID: f.core.ID()})
	is.NoErr(err)
	is.Equal(len(team), 2)

	ranged, err := f.b.Adjustments(f.ctx, f.carol, AdjustmentFilter{TeamID: f.core.ID(), From: "2024-01-16", To: "2024-01-31"})
	is.NoErr(err)
	is.Equal(len(ranged), 1)

	_, err = f.b.Adjustments(f.ctx, f.bob, AdjustmentFilter{UserID: f.carol.ID()})
	is.True(errors.Is(err, proto.ErrForbidden))

	_, err = f.b.Adjustments(f.ctx, f.dave, AdjustmentFilter{TeamID: f.core.ID()})
	is.True(errors.Is(err, proto.ErrForbidden))
}
