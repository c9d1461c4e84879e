package store

import (
	"context"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
)

// TeamStore is an interface for managing teams and their members.
type TeamStore interface {
	CreateTeam(ctx context.Context, h db.Handler, name string, color string, createdBy int64) (models.Team, error)
	GetTeamByID(ctx context.Context, h db.Handler, id int64) (models.Team, error)
	GetAllTeams(ctx context.Context, h db.Handler) ([]models.Team, error)
	ListTeamsByUser(ctx context.Context, h db.Handler, userID int64) ([]models.Team, error)
	AddUserToTeam(ctx context.Context, h db.Handler, teamID int64, userID int64, role access.Role) (models.TeamMember, error)
	GetTeamMember(ctx context.Context, h db.Handler, teamID int64, userID int64) (models.TeamMember, error)
	ListTeamMembers(ctx context.Context, h db.Handler, teamID int64) ([]models.TeamMemberUser, error)
}
