package proto

import "github.com/charmbracelet/punch/pkg/access"

// Team is an interface representing a team.
type Team interface {
	// ID returns the team's ID.
	ID() int64
	// Name returns the team's name.
	Name() string
	// Color returns the team's display color.
	Color() string
	// CreatedBy returns the ID of the user who created the team.
	CreatedBy() int64
}

// TeamMember is a user's membership in a team.
type TeamMember struct {
	UserID      int64       `json:"user_id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Role        access.Role `json:"role"`
}
