package worktime

import (
	"sort"
	"time"

	"github.com/charmbracelet/punch/pkg/db/models"
)

// Day is the time report of a single date.
type Day struct {
	Date            string `json:"date"`
	WorkedMinutes   int    `json:"worked_minutes"`
	BreakMinutes    int    `json:"break_minutes"`
	AdjustedMinutes int    `json:"adjusted_minutes"`
	TotalMinutes    int    `json:"total_minutes"`
	Overridden      bool   `json:"overridden"`
}

// Summary is a time report over a range of dates.
type Summary struct {
	Days         []Day `json:"days"`
	TotalMinutes int   `json:"total_minutes"`
}

// Summarize builds a report from sessions, their breaks, and adjustments.
// Sessions and breaks count on the UTC date they started; open intervals run
// until now. Adjustments apply in creation order: add and subtract move the
// total, override replaces it. Totals never go below zero.
func Summarize(sessions []models.TimeSession, breaks []models.BreakSegment, adjustments []models.Adjustment, now time.Time) Summary {
	days := map[string]*Day{}
	day := func(date string) *Day {
		d, ok := days[date]
		if !ok {
			d = &Day{Date: date}
			days[date] = d
		}
		return d
	}

	sessionDate := make(map[int64]string, len(sessions))
	for _, s := range sessions {
		date := s.ClockIn.UTC().Format(DateLayout)
		sessionDate[s.ID] = date
		end := now
		if s.ClockOut.Valid {
			end = s.ClockOut.Time
		}
		day(date).WorkedMinutes += minutesBetween(s.ClockIn, end)
	}

	for _, b := range breaks {
		date, ok := sessionDate[b.SessionID]
		if !ok {
			continue
		}
		end := now
		if b.BreakEnd.Valid {
			end = b.BreakEnd.Time
		}
		day(date).BreakMinutes += minutesBetween(b.BreakStart, end)
	}

	for _, d := range days {
		d.TotalMinutes = max(d.WorkedMinutes-d.BreakMinutes, 0)
	}

	adjs := append([]models.Adjustment(nil), adjustments...)
	sort.SliceStable(adjs, func(i, j int) bool { return adjs[i].ID < adjs[j].ID })
	for _, a := range adjs {
		d := day(a.EffectiveDate)
		before := d.TotalMinutes
		switch a.Type {
		case models.AdjustAddTime:
			d.TotalMinutes = max(d.TotalMinutes+a.Minutes, 0)
		case models.AdjustSubtractTime:
			d.TotalMinutes = max(d.TotalMinutes-a.Minutes, 0)
		case models.AdjustOverride:
			d.TotalMinutes = max(a.Minutes, 0)
			d.Overridden = true
		}
		d.AdjustedMinutes += d.TotalMinutes - before
	}

	var s Summary
	for _, d := range days {
		s.Days = append(s.Days, *d)
		s.TotalMinutes += d.TotalMinutes
	}
	sort.Slice(s.Days, func(i, j int) bool { return s.Days[i].Date < s.Days[j].Date })
	if s.Days == nil {
		s.Days = []Day{}
	}

	return s
}

func minutesBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}
