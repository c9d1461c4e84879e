package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func fields(t *testing.T, err error) []string {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err => %v, want *ValidationError", err)
	}
	names := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestDecodeClockIn(t *testing.T) {
	is := is.New(t)

	var in ClockIn
	is.NoErr(Decode(strings.NewReader(`{"team_id": 7}`), &in))
	is.Equal(in.TeamID, int64(7))

	in = ClockIn{}
	err := Decode(strings.NewReader(`{}`), &in)
	is.Equal(fields(t, err), []string{"team_id"})

	err = Decode(strings.NewReader(`{"team_id": "seven"}`), &in)
	is.Equal(fields(t, err), []string{"team_id"})

	err = Decode(strings.NewReader(`{"team_id": 1, "user_id": 2}`), &in)
	is.Equal(fields(t, err), []string{"user_id"})

	err = Decode(strings.NewReader(``), &in)
	is.Equal(fields(t, err), []string{"body"})
}

func TestStartBreak(t *testing.T) {
	is := is.New(t)
	is.NoErr(Validate(&StartBreak{SessionID: 1, BreakType: "LUNCH"}))
	err := Validate(&StartBreak{SessionID: 1, BreakType: "NAP"})
	is.Equal(fields(t, err), []string{"break_type"})
}

func TestCommentTrimmed(t *testing.T) {
	is := is.New(t)

	c := &Comment{Content: "   "}
	is.Equal(fields(t, Validate(c)), []string{"content"})

	c = &Comment{Content: "  looks good  "}
	is.NoErr(Validate(c))
	is.Equal(c.Content, "looks good")

	c = &Comment{Content: strings.Repeat("x", 5000)}
	is.NoErr(Validate(c))

	c = &Comment{Content: strings.Repeat("x", 5001)}
	is.Equal(fields(t, Validate(c)), []string{"content"})
}

func TestSubmitRequestPayload(t *testing.T) {
	is := is.New(t)

	s := &SubmitRequest{
		TeamID:  1,
		Type:    "MISSED_LUNCH",
		Payload: []byte(`{"date":"2024-01-15","time_from":"12:00","time_to":"12:30","break_type":"LUNCH"}`),
	}
	is.NoErr(Validate(s))
	is.NoErr(s.ValidatePayload())

	s.Payload = []byte(`{"date":"2024-01-15","time_from":"noon","break_type":"LUNCH"}`)
	is.Equal(fields(t, s.ValidatePayload()), []string{"payload.time_from", "payload.time_to"})

	s = &SubmitRequest{
		TeamID:  1,
		Type:    "BREAK_DURATION_ADJUSTMENT",
		Payload: []byte(`{"break_segment_id":3,"current_minutes":30,"adjusted_minutes":15}`),
	}
	is.NoErr(s.ValidatePayload())

	s.Payload = []byte(`{"break_segment_id":3,"current_minutes":30.5,"adjusted_minutes":15}`)
	is.Equal(fields(t, s.ValidatePayload()), []string{"payload.current_minutes"})

	s.Payload = []byte(`{"break_segment_id":3,"current_minutes":30}`)
	is.Equal(fields(t, s.ValidatePayload()), []string{"payload.adjusted_minutes"})

	s = &SubmitRequest{TeamID: 1, Type: "OTHER"}
	is.NoErr(Validate(s))
	is.Equal(string(s.Payload), "{}")
	is.NoErr(s.ValidatePayload())

	s.Payload = []byte(`"just a string"`)
	is.Equal(fields(t, s.ValidatePayload()), []string{"payload"})

	s = &SubmitRequest{TeamID: 1, Type: "VACATION"}
	is.Equal(fields(t, Validate(s)), []string{"type"})
}

func TestReview(t *testing.T) {
	is := is.New(t)

	r := &Review{Decision: "APPROVED", CreateAdjustment: true}
	is.NoErr(Validate(r))
	is.True(r.WantsAdjustment())

	r = &Review{Decision: "REJECTED", CreateAdjustment: true}
	is.NoErr(Validate(r))
	is.True(!r.WantsAdjustment())

	r = &Review{Decision: "MAYBE"}
	is.Equal(fields(t, Validate(r)), []string{"decision"})

	neg := -5
	r = &Review{Decision: "APPROVED", Adjustment: &ReviewAdjustment{Type: "OVERRIDE", Minutes: &neg}}
	is.Equal(fields(t, Validate(r)), []string{"adjustment.minutes"})
}

func TestCreateAdjustment(t *testing.T) {
	is := is.New(t)
	m := 30
	a := &CreateAdjustment{UserID: 1, TeamID: 1, Type: "ADD_TIME", Minutes: &m, EffectiveDate: "2024-01-15"}
	is.NoErr(Validate(a))

	neg := -30
	a.Minutes = &neg
	is.NoErr(Validate(a)) // signed minutes are fine for ADD_TIME

	a.Type = "OVERRIDE"
	is.Equal(fields(t, Validate(a)), []string{"minutes"})

	a = &CreateAdjustment{UserID: 1, TeamID: 1, Type: "ADD_TIME", EffectiveDate: "15/01/2024"}
	is.Equal(fields(t, Validate(a)), []string{"minutes", "effective_date"})
}

func TestAmendAdjustment(t *testing.T) {
	is := is.New(t)

	is.Equal(fields(t, Validate(&AmendAdjustment{})), []string{"body"})

	d := "2024-01-15"
	is.NoErr(Validate(&AmendAdjustment{EffectiveDate: &d}))

	bad := "yesterday"
	is.Equal(fields(t, Validate(&AmendAdjustment{EffectiveDate: &bad})), []string{"effective_date"})
}

func TestCreateTeamAndMembers(t *testing.T) {
	is := is.New(t)
	is.NoErr(Validate(&CreateTeam{Name: " Ops ", Color: "#ff8800"}))
	is.Equal(fields(t, Validate(&CreateTeam{Name: "Ops", Color: "orange"})), []string{"color"})

	m := &AddMember{Email: " Bob@Example.com", Role: "manager"}
	is.NoErr(Validate(m))
	is.Equal(m.Email, "bob@example.com")
	is.Equal(m.Role, "MANAGER")

	is.Equal(fields(t, Validate(&AddMember{Role: "MEMBER"})), []string{"user_id"})
}
