// Package worktime derives durations, dates, and adjustments from recorded
// time and request payloads. Nothing in this package does I/O.
package worktime

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/punch/pkg/db/models"
)

// DateLayout is the layout of effective dates.
const DateLayout = time.DateOnly

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock parses an "HH:MM" wall clock time into minutes since midnight.
func ParseClock(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, true
}

// MinutesFromTimeRange returns the minutes elapsed between two "HH:MM" wall
// clock times. An end before the start crosses midnight.
func MinutesFromTimeRange(from, to string) (int, bool) {
	start, ok := ParseClock(from)
	if !ok {
		return 0, false
	}
	end, ok := ParseClock(to)
	if !ok {
		return 0, false
	}
	if end < start {
		end += 24 * 60
	}
	return end - start, true
}

// NormalizeDate reformats a YYYY-MM-DD or RFC 3339 value to YYYY-MM-DD.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(DateLayout), true
	}
	return "", false
}

// EffectiveDateFromRequestData extracts the date a request applies to.
// A valid "date_from" wins over "date".
func EffectiveDateFromRequestData(data map[string]any) (string, bool) {
	for _, key := range []string{"date_from", "date"} {
		v, ok := data[key].(string)
		if !ok || v == "" {
			continue
		}
		if date, ok := NormalizeDate(v); ok {
			return date, true
		}
	}
	return "", false
}

// AdjustmentTypeForRequest maps a request type label to the adjustment type
// an approval produces by default. Break and lunch labels subtract time,
// correction and override labels override the day, the rest add time.
func AdjustmentTypeForRequest(label models.RequestType) models.AdjustmentType {
	l := strings.ToUpper(string(label))
	switch {
	case strings.Contains(l, "BREAK"), strings.Contains(l, "LUNCH"):
		return models.AdjustSubtractTime
	case strings.Contains(l, "CORRECTION"), strings.Contains(l, "OVERRIDE"):
		return models.AdjustOverride
	default:
		return models.AdjustAddTime
	}
}

// Derived is an adjustment derived from a request.
type Derived struct {
	Type          models.AdjustmentType
	Minutes       int
	EffectiveDate string
}

// DeriveAdjustment builds the default adjustment for an approved request.
// Minutes come from the time_from/time_to pair, the break duration delta, or
// an explicit "minutes" value, in that order. It returns false when the
// payload carries neither minutes nor a date.
func DeriveAdjustment(req models.CorrectionRequest) (Derived, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(req.Payload), &data); err != nil {
		return Derived{}, false
	}

	d := Derived{Type: AdjustmentTypeForRequest(req.Type)}

	date, ok := EffectiveDateFromRequestData(data)
	if !ok {
		return Derived{}, false
	}
	d.EffectiveDate = date

	from, _ := data["time_from"].(string)
	to, _ := data["time_to"].(string)
	current, hasCurrent := intValue(data["current_minutes"])
	adjusted, hasAdjusted := intValue(data["adjusted_minutes"])
	explicit, hasExplicit := intValue(data["minutes"])

	switch {
	case from != "" && to != "":
		m, ok := MinutesFromTimeRange(from, to)
		if !ok {
			return Derived{}, false
		}
		d.Minutes = m
	case hasCurrent && hasAdjusted:
		// A longer break means less worked time.
		d.Minutes = adjusted - current
		d.Type = models.AdjustSubtractTime
	case hasExplicit:
		d.Minutes = explicit
	default:
		return Derived{}, false
	}

	if d.Minutes < 0 && d.Type != models.AdjustOverride {
		d.Minutes = -d.Minutes
		if d.Type == models.AdjustSubtractTime {
			d.Type = models.AdjustAddTime
		} else {
			d.Type = models.AdjustSubtractTime
		}
	}
	if d.Minutes < 0 {
		return Derived{}, false
	}

	return d, true
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > maxMinutes {
			return 0, false
		}
		return int(n), true
	case int:
		return bounded(int64(n))
	case int64:
		return bounded(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return bounded(i)
	}
	return 0, false
}

// maxMinutes bounds payload minute values to what an int32 column holds.
const maxMinutes = math.MaxInt32

func bounded(i int64) (int, bool) {
	if i > maxMinutes || i < -maxMinutes {
		return 0, false
	}
	return int(i), true
}
