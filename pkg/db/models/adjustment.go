package models

import (
	"database/sql"
	"time"
)

// AdjustmentType determines how an adjustment's minutes apply to a day.
type AdjustmentType string

const (
	// AdjustAddTime adds minutes to the recorded total.
	AdjustAddTime AdjustmentType = "ADD_TIME"
	// AdjustSubtractTime subtracts minutes from the recorded total.
	AdjustSubtractTime AdjustmentType = "SUBTRACT_TIME"
	// AdjustOverride replaces the recorded total with an absolute value.
	AdjustOverride AdjustmentType = "OVERRIDE"
)

// IsValid returns whether the adjustment type is known.
func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustAddTime, AdjustSubtractTime, AdjustOverride:
		return true
	}
	return false
}

// Adjustment is a ledger entry altering a user's recorded time on a day.
type Adjustment struct {
	ID            int64          `db:"id"`
	RequestID     sql.NullInt64  `db:"request_id"`
	UserID        int64          `db:"user_id"`
	TeamID        int64          `db:"team_id"`
	CreatedBy     int64          `db:"created_by"`
	Type          AdjustmentType `db:"adjustment_type"`
	Minutes       int            `db:"minutes"`
	EffectiveDate string         `db:"effective_date"`
	Description   string         `db:"description"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
