package schema

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateTeam is the input of a team creation.
type CreateTeam struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// Normalize implements normalizer.
func (t *CreateTeam) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Color = strings.TrimSpace(t.Color)
}

// AddMember is the input of a team membership. The user is identified by
// id or email.
type AddMember struct {
	UserID int64  `json:"user_id" validate:"omitempty,gt=0"`
	Email  string `json:"email" validate:"omitempty,email"`
	Role   string `json:"role" validate:"required,oneof=MEMBER MANAGER ADMIN"`
}

// Normalize implements normalizer.
func (m *AddMember) Normalize() {
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.Role = strings.ToUpper(strings.TrimSpace(m.Role))
}

func addMemberLevel(sl validator.StructLevel) {
	m := sl.Current().Interface().(AddMember)
	if m.UserID == 0 && m.Email == "" {
		sl.ReportError(m.UserID, "user_id", "UserID", "required_without", "email")
	}
}

// RenameUser is the input of a display name change.
type RenameUser struct {
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

// Normalize implements normalizer.
func (r *RenameUser) Normalize() {
	r.DisplayName = strings.TrimSpace(r.DisplayName)
}
