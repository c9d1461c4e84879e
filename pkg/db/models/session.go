package models

import (
	"database/sql"
	"time"
)

// TimeSession represents one clock-in to clock-out interval.
// A session is open while ClockOut is not valid.
type TimeSession struct {
	ID        int64        `db:"id"`
	UserID    int64        `db:"user_id"`
	TeamID    int64        `db:"team_id"`
	ClockIn   time.Time    `db:"clock_in"`
	ClockOut  sql.NullTime `db:"clock_out"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

// IsOpen returns whether the session has not been clocked out yet.
func (s TimeSession) IsOpen() bool {
	return !s.ClockOut.Valid
}

// BreakType is the kind of a break segment.
type BreakType string

const (
	// BreakTypeBreak is a short break.
	BreakTypeBreak BreakType = "BREAK"
	// BreakTypeLunch is a lunch break.
	BreakTypeLunch BreakType = "LUNCH"
)

// IsValid returns whether the break type is known.
func (t BreakType) IsValid() bool {
	return t == BreakTypeBreak || t == BreakTypeLunch
}

// BreakSegment represents a pause nested within a session.
type BreakSegment struct {
	ID         int64        `db:"id"`
	SessionID  int64        `db:"session_id"`
	BreakType  BreakType    `db:"break_type"`
	BreakStart time.Time    `db:"break_start"`
	BreakEnd   sql.NullTime `db:"break_end"`
	CreatedAt  time.Time    `db:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

// IsOpen returns whether the break has not ended yet.
func (b BreakSegment) IsOpen() bool {
	return !b.BreakEnd.Valid
}
