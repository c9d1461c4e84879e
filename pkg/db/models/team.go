package models

import (
	"time"

	"github.com/charmbracelet/punch/pkg/access"
)

// Team represents a team.
type Team struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"`
	CreatedBy int64     `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TeamMember represents a member of a team.
type TeamMember struct {
	ID        int64       `db:"id"`
	TeamID    int64       `db:"team_id"`
	UserID    int64       `db:"user_id"`
	Role      access.Role `db:"role"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

// TeamMemberUser is a team member joined with its user.
type TeamMemberUser struct {
	TeamMember
	Email       string `db:"email"`
	DisplayName string `db:"display_name"`
}
