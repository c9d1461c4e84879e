package schema

// ClockIn is the input of a clock-in.
type ClockIn struct {
	TeamID int64 `json:"team_id" validate:"required,gt=0"`
}

// SwitchTeam is the input of a team switch.
type SwitchTeam struct {
	TeamID int64 `json:"team_id" validate:"required,gt=0"`
}

// StartBreak is the input of a break start.
type StartBreak struct {
	SessionID int64  `json:"session_id" validate:"required,gt=0"`
	BreakType string `json:"break_type" validate:"required,oneof=BREAK LUNCH"`
}
