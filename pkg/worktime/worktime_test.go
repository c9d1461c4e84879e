package worktime

import (
	"testing"

	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/matryer/is"
)

func TestMinutesFromTimeRange(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
		ok       bool
	}{
		{"09:00", "17:30", 510, true},
		{"23:00", "01:00", 120, true},
		{"08:15", "08:15", 0, true},
		{"00:00", "23:59", 1439, true},
		{"bad", "17:00", 0, false},
		{"09:00", "24:00", 0, false},
		{"9:00", "17:00", 0, false},
		{"09:60", "17:00", 0, false},
	}
	for _, c := range cases {
		got, ok := MinutesFromTimeRange(c.from, c.to)
		if got != c.want || ok != c.ok {
			t.Errorf("MinutesFromTimeRange(%q, %q) => %d, %t, want %d, %t", c.from, c.to, got, ok, c.want, c.ok)
		}
	}
}

func TestEffectiveDateFromRequestData(t *testing.T) {
	cases := []struct {
		data map[string]any
		want string
		ok   bool
	}{
		{map[string]any{"date_from": "2024-01-05", "date": "2024-01-01"}, "2024-01-05", true},
		{map[string]any{"date": "2024-01-01"}, "2024-01-01", true},
		{map[string]any{"date": "2024-01-01T22:30:00Z"}, "2024-01-01", true},
		{map[string]any{"date_from": "", "date": "2024-02-29"}, "2024-02-29", true},
		{map[string]any{"date_from": "not-a-date", "date": "2024-01-01"}, "2024-01-01", true},
		{map[string]any{"date_from": "not-a-date"}, "", false},
		{map[string]any{"date": "2023-02-29"}, "", false},
		{map[string]any{"date": 20240101}, "", false},
		{map[string]any{}, "", false},
	}
	for _, c := range cases {
		got, ok := EffectiveDateFromRequestData(c.data)
		if got != c.want || ok != c.ok {
			t.Errorf("EffectiveDateFromRequestData(%v) => %q, %t, want %q, %t", c.data, got, ok, c.want, c.ok)
		}
	}
}

func TestAdjustmentTypeForRequest(t *testing.T) {
	cases := map[models.RequestType]models.AdjustmentType{
		models.RequestMissedBreak:             models.AdjustSubtractTime,
		models.RequestMissedLunch:             models.AdjustSubtractTime,
		models.RequestBreakDurationAdjustment: models.AdjustSubtractTime,
		models.RequestTimeCorrection:          models.AdjustOverride,
		"manual_override":                     models.AdjustOverride,
		models.RequestMissedClockIn:           models.AdjustAddTime,
		models.RequestMissedClockOut:          models.AdjustAddTime,
		models.RequestScheduleChange:          models.AdjustAddTime,
		models.RequestOther:                   models.AdjustAddTime,
	}
	for in, want := range cases {
		if got := AdjustmentTypeForRequest(in); got != want {
			t.Errorf("AdjustmentTypeForRequest(%q) => %q, want %q", in, got, want)
		}
	}
}

func TestDeriveAdjustment(t *testing.T) {
	is := is.New(t)

	d, ok := DeriveAdjustment(models.CorrectionRequest{
		Type:    models.RequestMissedLunch,
		Payload: `{"date":"2024-01-15","time_from":"12:00","time_to":"12:45","break_type":"LUNCH"}`,
	})
	is.True(ok)
	is.Equal(d, Derived{Type: models.AdjustSubtractTime, Minutes: 45, EffectiveDate: "2024-01-15"})

	d, ok = DeriveAdjustment(models.CorrectionRequest{
		Type:    models.RequestBreakDurationAdjustment,
		Payload: `{"date":"2024-01-15","break_segment_id":3,"current_minutes":30,"adjusted_minutes":15}`,
	})
	is.True(ok)
	is.Equal(d, Derived{Type: models.AdjustAddTime, Minutes: 15, EffectiveDate: "2024-01-15"})

	d, ok = DeriveAdjustment(models.CorrectionRequest{
		Type:    models.RequestTimeCorrection,
		Payload: `{"date_from":"2024-01-16","date":"2024-01-01","time_from":"09:00","time_to":"17:30"}`,
	})
	is.True(ok)
	is.Equal(d, Derived{Type: models.AdjustOverride, Minutes: 510, EffectiveDate: "2024-01-16"})

	d, ok = DeriveAdjustment(models.CorrectionRequest{
		Type:    models.RequestOther,
		Payload: `{"date":"2024-01-15","minutes":-20}`,
	})
	is.True(ok)
	is.Equal(d, Derived{Type: models.AdjustSubtractTime, Minutes: 20, EffectiveDate: "2024-01-15"})

	_, ok = DeriveAdjustment(models.CorrectionRequest{
		Type:    models.RequestOther,
		Payload: `{"note":"nothing to go on"}`,
	})
	is.True(!ok)

	_, ok = DeriveAdjustment(models.CorrectionRequest{Type: models.RequestOther, Payload: `not json`})
	is.True(!ok)
}

func TestDeriveAdjustmentOutOfRangeMinutes(t *testing.T) {
	is := is.New(t)

	for _, payload := range []string{
		`{"date":"2024-01-15","minutes":1e20}`,
		`{"date":"2024-01-15","minutes":-1e20}`,
		`{"date":"2024-01-15","current_minutes":0,"adjusted_minutes":3000000000}`,
	} {
		_, ok := DeriveAdjustment(models.CorrectionRequest{Type: models.RequestOther, Payload: payload})
		is.True(!ok) // out of range minutes
	}

	d, ok := DeriveAdjustment(models.CorrectionRequest{
		Type:    models.RequestOther,
		Payload: `{"date":"2024-01-15","minutes":2147483647}`,
	})
	is.True(ok)
	is.Equal(d.Minutes, 2147483647)
}
