package backend

import (
	"context"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/proto"
)

// IsSuperadmin returns whether the user bypasses team membership checks,
// either by the admin attribute or by the configured allow-list.
func (d *Backend) IsSuperadmin(user proto.User) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || d.cfg.IsSuperadmin(user.Email())
}

// Role returns the effective role of a user in a team. Users without a
// membership get access.NoAccess.
func (d *Backend) Role(ctx context.Context, user proto.User, teamID int64) access.Role {
	role, err := d.role(ctx, d.db, user, teamID)
	if err != nil {
		d.logger.Error("error resolving role", "team", teamID, "err", err)
		return access.NoAccess
	}
	return role
}

func (d *Backend) role(ctx context.Context, h db.Handler, user proto.User, teamID int64) (access.Role, error) {
	if user == nil {
		return access.NoAccess, nil
	}

	if d.IsSuperadmin(user) {
		return access.SuperadminRole, nil
	}

	m, err := d.store.GetTeamMember(ctx, h, teamID, user.ID())
	if err != nil {
		if isNotFound(err) {
			return access.NoAccess, nil
		}
		return access.NoAccess, err
	}

	return m.Role, nil
}

// requireRole returns the caller's role in the team, or ErrForbidden when it
// is below the wanted role. A superadmin passes as long as the team exists.
func (d *Backend) requireRole(ctx context.Context, h db.Handler, user proto.User, teamID int64, want access.Role) (access.Role, error) {
	if user == nil {
		return access.NoAccess, proto.ErrUnauthenticated
	}

	role, err := d.role(ctx, h, user, teamID)
	if err != nil {
		return access.NoAccess, err
	}

	if role == access.SuperadminRole {
		if _, err := d.store.GetTeamByID(ctx, h, teamID); err != nil {
			return access.NoAccess, notFound(err, proto.ErrTeamNotFound)
		}
		return role, nil
	}

	if role < want || role == access.NoAccess {
		return role, proto.ErrForbidden
	}

	return role, nil
}

// membership returns the team role of a user ignoring superadmin status.
func (d *Backend) membership(ctx context.Context, h db.Handler, userID int64, teamID int64) (access.Role, error) {
	m, err := d.store.GetTeamMember(ctx, h, teamID, userID)
	if err != nil {
		if isNotFound(err) {
			return access.NoAccess, nil
		}
		return access.NoAccess, err
	}
	return m.Role, nil
}
