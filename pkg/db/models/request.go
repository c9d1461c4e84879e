package models

import (
	"database/sql"
	"time"
)

// RequestType is the kind of a correction request.
type RequestType string

// Correction request types.
const (
	RequestMissedClockIn           RequestType = "MISSED_CLOCK_IN"
	RequestMissedClockOut          RequestType = "MISSED_CLOCK_OUT"
	RequestMissedBreak             RequestType = "MISSED_BREAK"
	RequestMissedLunch             RequestType = "MISSED_LUNCH"
	RequestBreakDurationAdjustment RequestType = "BREAK_DURATION_ADJUSTMENT"
	RequestTimeCorrection          RequestType = "TIME_CORRECTION"
	RequestScheduleChange          RequestType = "SCHEDULE_CHANGE"
	RequestOther                   RequestType = "OTHER"
)

// RequestTypes lists every known request type.
var RequestTypes = []RequestType{
	RequestMissedClockIn,
	RequestMissedClockOut,
	RequestMissedBreak,
	RequestMissedLunch,
	RequestBreakDurationAdjustment,
	RequestTimeCorrection,
	RequestScheduleChange,
	RequestOther,
}

// IsValid returns whether the request type is known.
func (t RequestType) IsValid() bool {
	for _, rt := range RequestTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// RequestStatus is the review state of a correction request.
type RequestStatus string

const (
	// StatusPending is the initial state of every request.
	StatusPending RequestStatus = "PENDING"
	// StatusApproved is a terminal state.
	StatusApproved RequestStatus = "APPROVED"
	// StatusRejected is a terminal state.
	StatusRejected RequestStatus = "REJECTED"
)

// CorrectionRequest represents a user-submitted claim to change recorded
// time. Payload holds the raw JSON object submitted with the request.
type CorrectionRequest struct {
	ID          int64          `db:"id"`
	UserID      int64          `db:"user_id"`
	TeamID      int64          `db:"team_id"`
	Type        RequestType    `db:"request_type"`
	Description string         `db:"description"`
	Payload     string         `db:"payload"`
	Status      RequestStatus  `db:"status"`
	ReviewerID  sql.NullInt64  `db:"reviewer_id"`
	ReviewNotes sql.NullString `db:"review_notes"`
	ReviewedAt  sql.NullTime   `db:"reviewed_at"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Comment is an immutable note on a correction request.
type Comment struct {
	ID        int64     `db:"id"`
	RequestID int64     `db:"request_id"`
	AuthorID  int64     `db:"author_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}
