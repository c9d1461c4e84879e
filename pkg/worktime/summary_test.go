package worktime

import (
	"database/sql"
	"testing"
	"time"

	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/matryer/is"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 15, hour, minute, 0, 0, time.UTC)
}

func closed(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: true}
}

func TestSummarize(t *testing.T) {
	is := is.New(t)
	sessions := []models.TimeSession{
		{ID: 1, ClockIn: at(9, 0), ClockOut: closed(at(17, 30))},
	}
	breaks := []models.BreakSegment{
		{ID: 1, SessionID: 1, BreakStart: at(12, 0), BreakEnd: closed(at(12, 30))},
		{ID: 2, SessionID: 99, BreakStart: at(13, 0), BreakEnd: closed(at(14, 0))},
	}
	adjustments := []models.Adjustment{
		{ID: 2, Type: models.AdjustSubtractTime, Minutes: 15, EffectiveDate: "2024-01-15"},
		{ID: 1, Type: models.AdjustAddTime, Minutes: 30, EffectiveDate: "2024-01-15"},
		{ID: 3, Type: models.AdjustOverride, Minutes: 240, EffectiveDate: "2024-01-16"},
	}

	s := Summarize(sessions, breaks, adjustments, at(18, 0))
	is.Equal(len(s.Days), 2)
	is.Equal(s.Days[0], Day{
		Date:            "2024-01-15",
		WorkedMinutes:   510,
		BreakMinutes:    30,
		AdjustedMinutes: 15,
		TotalMinutes:    495,
	})
	is.Equal(s.Days[1], Day{
		Date:            "2024-01-16",
		AdjustedMinutes: 240,
		TotalMinutes:    240,
		Overridden:      true,
	})
	is.Equal(s.TotalMinutes, 735)
}

func TestSummarizeOpenSession(t *testing.T) {
	is := is.New(t)
	sessions := []models.TimeSession{{ID: 1, ClockIn: at(9, 0)}}
	breaks := []models.BreakSegment{{ID: 1, SessionID: 1, BreakStart: at(10, 0)}}

	s := Summarize(sessions, breaks, nil, at(10, 20))
	is.Equal(s.TotalMinutes, 60)
	is.Equal(s.Days[0].BreakMinutes, 20)
}

func TestSummarizeEmpty(t *testing.T) {
	is := is.New(t)
	s := Summarize(nil, nil, nil, at(9, 0))
	is.Equal(len(s.Days), 0)
	is.True(s.Days != nil)
}

func TestSummarizeNeverNegative(t *testing.T) {
	is := is.New(t)
	adjustments := []models.Adjustment{
		{ID: 1, Type: models.AdjustAddTime, Minutes: -90, EffectiveDate: "2024-01-05"},
		{ID: 2, Type: models.AdjustSubtractTime, Minutes: 30, EffectiveDate: "2024-01-06"},
	}

	s := Summarize(nil, nil, adjustments, at(9, 0))
	is.Equal(s.Days, []Day{
		{Date: "2024-01-05"},
		{Date: "2024-01-06"},
	})
	is.Equal(s.TotalMinutes, 0)
}
