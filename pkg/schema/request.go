package schema

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/punch/pkg/db/models"
)

// SubmitRequest is the input of a correction request submission. Payload
// is checked against the shape its type requires.
type SubmitRequest struct {
	TeamID      int64           `json:"team_id" validate:"required,gt=0"`
	Type        string          `json:"type" validate:"required,oneof=MISSED_CLOCK_IN MISSED_CLOCK_OUT MISSED_BREAK MISSED_LUNCH BREAK_DURATION_ADJUSTMENT TIME_CORRECTION SCHEDULE_CHANGE OTHER"`
	Description string          `json:"description" validate:"max=2000"`
	Payload     json.RawMessage `json:"payload"`
}

// Normalize implements normalizer.
func (s *SubmitRequest) Normalize() {
	s.Description = strings.TrimSpace(s.Description)
	if len(bytes.TrimSpace(s.Payload)) == 0 || bytes.Equal(bytes.TrimSpace(s.Payload), []byte("null")) {
		s.Payload = json.RawMessage("{}")
	}
}

// MissedBreakPayload is the payload of MISSED_BREAK and MISSED_LUNCH
// requests.
type MissedBreakPayload struct {
	Date      string `json:"date" validate:"required,date"`
	TimeFrom  string `json:"time_from" validate:"required,clock"`
	TimeTo    string `json:"time_to" validate:"required,clock"`
	BreakType string `json:"break_type" validate:"required,oneof=BREAK LUNCH"`
}

// BreakDurationPayload is the payload of BREAK_DURATION_ADJUSTMENT
// requests.
type BreakDurationPayload struct {
	BreakSegmentID  int64  `json:"break_segment_id" validate:"required,gt=0"`
	CurrentMinutes  *int   `json:"current_minutes" validate:"required,gte=0"`
	AdjustedMinutes *int   `json:"adjusted_minutes" validate:"required,gte=0"`
	Date            string `json:"date" validate:"omitempty,date"`
}

// ValidatePayload checks the payload against the shape the request type
// requires. Types without a fixed shape accept any JSON object.
func (s *SubmitRequest) ValidatePayload() error {
	var shape any
	switch models.RequestType(s.Type) {
	case models.RequestMissedBreak, models.RequestMissedLunch:
		shape = &MissedBreakPayload{}
	case models.RequestBreakDurationAdjustment:
		shape = &BreakDurationPayload{}
	default:
		var obj map[string]any
		if err := json.Unmarshal(s.Payload, &obj); err != nil || obj == nil {
			return Invalid("payload", "object", "payload must be a JSON object")
		}
		return nil
	}

	if err := json.Unmarshal(s.Payload, shape); err != nil {
		if ve, ok := decodeError(err).(*ValidationError); ok {
			for i := range ve.Fields {
				ve.Fields[i].Field = "payload." + ve.Fields[i].Field
			}
			return ve
		}
		return err
	}
	if err := Validate(shape); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			for i := range ve.Fields {
				ve.Fields[i].Field = "payload." + ve.Fields[i].Field
			}
			return ve
		}
		return err
	}
	return nil
}

// Comment is the input of a comment on a request.
type Comment struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// Normalize implements normalizer.
func (c *Comment) Normalize() {
	c.Content = strings.TrimSpace(c.Content)
}

// Review is the input of a request review. An approval derives an
// adjustment from the request when CreateAdjustment is set or Adjustment
// is given; Adjustment fields override the derived ones.
type Review struct {
	Decision         string            `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	Notes            string            `json:"notes" validate:"max=2000"`
	CreateAdjustment bool              `json:"create_adjustment"`
	Adjustment       *ReviewAdjustment `json:"adjustment"`
}

// Normalize implements normalizer.
func (r *Review) Normalize() {
	r.Notes = strings.TrimSpace(r.Notes)
}

// WantsAdjustment returns whether the review should produce an adjustment.
func (r *Review) WantsAdjustment() bool {
	return r.Decision == string(models.StatusApproved) && (r.CreateAdjustment || r.Adjustment != nil)
}

// ReviewAdjustment overrides fields of the adjustment derived on approval.
type ReviewAdjustment struct {
	Type          string `json:"type" validate:"omitempty,oneof=ADD_TIME SUBTRACT_TIME OVERRIDE"`
	Minutes       *int   `json:"minutes"`
	EffectiveDate string `json:"effective_date" validate:"omitempty,date"`
	Description   string `json:"description" validate:"max=2000"`
}
