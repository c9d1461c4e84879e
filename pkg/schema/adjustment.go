package schema

import (
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/go-playground/validator/v10"
)

// CreateAdjustment is the input of a direct adjustment.
type CreateAdjustment struct {
	UserID        int64  `json:"user_id" validate:"required,gt=0"`
	TeamID        int64  `json:"team_id" validate:"required,gt=0"`
	Type          string `json:"type" validate:"required,oneof=ADD_TIME SUBTRACT_TIME OVERRIDE"`
	Minutes       *int   `json:"minutes" validate:"required"`
	EffectiveDate string `json:"effective_date" validate:"required,date"`
	Description   string `json:"description" validate:"max=2000"`
	RequestID     *int64 `json:"request_id" validate:"omitempty,gt=0"`
}

// AmendAdjustment is the input of an adjustment amendment. Only the given
// fields change.
type AmendAdjustment struct {
	Type          *string `json:"type" validate:"omitempty,oneof=ADD_TIME SUBTRACT_TIME OVERRIDE"`
	Minutes       *int    `json:"minutes"`
	EffectiveDate *string `json:"effective_date" validate:"omitempty,date"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
}

// Empty returns whether no field is set.
func (a *AmendAdjustment) Empty() bool {
	return a.Type == nil && a.Minutes == nil && a.EffectiveDate == nil && a.Description == nil
}

func createAdjustmentLevel(sl validator.StructLevel) {
	a := sl.Current().Interface().(CreateAdjustment)
	if a.Minutes != nil && *a.Minutes < 0 && a.Type == string(models.AdjustOverride) {
		sl.ReportError(a.Minutes, "minutes", "Minutes", "override_gte", "0")
	}
}

func amendAdjustmentLevel(sl validator.StructLevel) {
	a := sl.Current().Interface().(AmendAdjustment)
	if a.Empty() {
		sl.ReportError(a.Type, "body", "", "min_fields", "1")
		return
	}
	if a.Type != nil && *a.Type == string(models.AdjustOverride) && a.Minutes != nil && *a.Minutes < 0 {
		sl.ReportError(a.Minutes, "minutes", "Minutes", "override_gte", "0")
	}
}

func reviewAdjustmentLevel(sl validator.StructLevel) {
	a := sl.Current().Interface().(ReviewAdjustment)
	if a.Type == string(models.AdjustOverride) && a.Minutes != nil && *a.Minutes < 0 {
		sl.ReportError(a.Minutes, "minutes", "Minutes", "override_gte", "0")
	}
}
