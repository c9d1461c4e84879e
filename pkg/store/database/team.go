package database

import (
	"context"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/store"
)

type teamStore struct{}

var _ store.TeamStore = (*teamStore)(nil)

// CreateTeam implements store.TeamStore.
func (s *teamStore) CreateTeam(ctx context.Context, tx db.Handler, name string, color string, createdBy int64) (models.Team, error) {
	query := tx.Rebind(`INSERT INTO teams (name, color, created_by, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, name, color, createdBy); err != nil {
		return models.Team{}, err //nolint:wrapcheck
	}

	return s.GetTeamByID(ctx, tx, id)
}

// GetTeamByID implements store.TeamStore.
func (*teamStore) GetTeamByID(ctx context.Context, tx db.Handler, id int64) (models.Team, error) {
	var m models.Team
	query := tx.Rebind(`SELECT * FROM teams WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// GetAllTeams implements store.TeamStore.
func (*teamStore) GetAllTeams(ctx context.Context, tx db.Handler) ([]models.Team, error) {
	var ms []models.Team
	query := tx.Rebind(`SELECT * FROM teams ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query)
	return ms, err //nolint:wrapcheck
}

// ListTeamsByUser implements store.TeamStore.
func (*teamStore) ListTeamsByUser(ctx context.Context, tx db.Handler, userID int64) ([]models.Team, error) {
	var ms []models.Team
	query := tx.Rebind(`
		SELECT
			teams.*
		FROM
			teams
			INNER JOIN team_members ON team_members.team_id = teams.id
		WHERE
			team_members.user_id = ?
		ORDER BY
			teams.id;
	`)
	err := tx.SelectContext(ctx, &ms, query, userID)
	return ms, err //nolint:wrapcheck
}

// AddUserToTeam implements store.TeamStore.
func (s *teamStore) AddUserToTeam(ctx context.Context, tx db.Handler, teamID int64, userID int64, role access.Role) (models.TeamMember, error) {
	query := tx.Rebind(`INSERT INTO team_members (team_id, user_id, role, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP);`)
	if _, err := tx.ExecContext(ctx, query, teamID, userID, role); err != nil {
		return models.TeamMember{}, err //nolint:wrapcheck
	}

	return s.GetTeamMember(ctx, tx, teamID, userID)
}

// GetTeamMember implements store.TeamStore.
func (*teamStore) GetTeamMember(ctx context.Context, tx db.Handler, teamID int64, userID int64) (models.TeamMember, error) {
	var m models.TeamMember
	query := tx.Rebind(`SELECT * FROM team_members WHERE team_id = ? AND user_id = ?;`)
	err := tx.GetContext(ctx, &m, query, teamID, userID)
	return m, err //nolint:wrapcheck
}

// ListTeamMembers implements store.TeamStore.
func (*teamStore) ListTeamMembers(ctx context.Context, tx db.Handler, teamID int64) ([]models.TeamMemberUser, error) {
	var ms []models.TeamMemberUser
	query := tx.Rebind(`
		SELECT
			team_members.*,
			users.email,
			users.display_name
		FROM
			team_members
			INNER JOIN users ON users.id = team_members.user_id
		WHERE
			team_members.team_id = ?
		ORDER BY
			team_members.id;
	`)
	err := tx.SelectContext(ctx, &ms, query, teamID)
	return ms, err //nolint:wrapcheck
}
