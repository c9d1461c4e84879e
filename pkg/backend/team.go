package backend

import (
	"context"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/proto"
)

// CreateTeam creates a team. The creator becomes its first admin.
func (d *Backend) CreateTeam(ctx context.Context, creator proto.User, name string, color string) (proto.Team, error) {
	if creator == nil {
		return nil, proto.ErrUnauthenticated
	}

	var m models.Team
	if err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = d.store.CreateTeam(ctx, tx, name, color, creator.ID())
		if err != nil {
			return err
		}

		_, err = d.store.AddUserToTeam(ctx, tx, m.ID, creator.ID(), access.AdminRole)
		return err
	}); err != nil {
		return nil, notFound(err, proto.ErrUserNotFound)
	}

	d.logger.Info("created team", "id", m.ID, "name", m.Name, "by", creator.ID())
	return team{m}, nil
}

// Team returns a team by id.
func (d *Backend) Team(ctx context.Context, id int64) (proto.Team, error) {
	m, err := d.store.GetTeamByID(ctx, d.db, id)
	if err != nil {
		return nil, notFound(err, proto.ErrTeamNotFound)
	}
	return team{m}, nil
}

// Teams lists the teams of a user. Superadmins see every team.
func (d *Backend) Teams(ctx context.Context, user proto.User) ([]proto.Team, error) {
	var ms []models.Team
	var err error
	if d.IsSuperadmin(user) {
		ms, err = d.store.GetAllTeams(ctx, d.db)
	} else {
		ms, err = d.store.ListTeamsByUser(ctx, d.db, user.ID())
	}
	if err != nil {
		return nil, err
	}

	teams := make([]proto.Team, 0, len(ms))
	for _, m := range ms {
		teams = append(teams, team{m})
	}
	return teams, nil
}

// TeamMembers lists the members of a team. Any member may list them.
func (d *Backend) TeamMembers(ctx context.Context, caller proto.User, teamID int64) ([]proto.TeamMember, error) {
	if _, err := d.requireRole(ctx, d.db, caller, teamID, access.MemberRole); err != nil {
		return nil, err
	}

	ms, err := d.store.ListTeamMembers(ctx, d.db, teamID)
	if err != nil {
		return nil, err
	}

	members := make([]proto.TeamMember, 0, len(ms))
	for _, m := range ms {
		members = append(members, proto.TeamMember{
			UserID:      m.UserID,
			Email:       m.Email,
			DisplayName: m.DisplayName,
			Role:        m.Role,
		})
	}
	return members, nil
}

// AddTeamMember adds a user to a team with the given role. Only team admins
// and superadmins may add members.
func (d *Backend) AddTeamMember(ctx context.Context, caller proto.User, teamID int64, userID int64, role access.Role) (proto.TeamMember, error) {
	if !role.IsMembership() {
		return proto.TeamMember{}, access.ErrInvalidRole
	}

	var member proto.TeamMember
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if _, err := d.requireRole(ctx, tx, caller, teamID, access.AdminRole); err != nil {
			return err
		}

		u, err := d.store.GetUserByID(ctx, tx, userID)
		if err != nil {
			return notFound(err, proto.ErrUserNotFound)
		}

		m, err := d.store.AddUserToTeam(ctx, tx, teamID, userID, role)
		if err != nil {
			if isDuplicate(err) {
				return proto.ErrMemberExist
			}
			return err
		}

		member = proto.TeamMember{
			UserID:      u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Role:        m.Role,
		}
		return nil
	})
	if err != nil {
		return proto.TeamMember{}, err
	}

	d.logger.Info("added team member", "team", teamID, "user", userID, "role", role, "by", caller.ID())
	return member, nil
}

type team struct {
	t models.Team
}

var _ proto.Team = team{}

// ID implements proto.Team.
func (t team) ID() int64 {
	return t.t.ID
}

// Name implements proto.Team.
func (t team) Name() string {
	return t.t.Name
}

// Color implements proto.Team.
func (t team) Color() string {
	return t.t.Color
}

// CreatedBy implements proto.Team.
func (t team) CreatedBy() int64 {
	return t.t.CreatedBy
}
