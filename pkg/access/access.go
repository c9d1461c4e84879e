// Package access defines the roles a user can hold within a team.
package access

import (
	"database/sql/driver"
	"encoding"
	"errors"
	"fmt"
)

// Role is the effective role of a user within a team.
type Role int

const (
	// NoAccess means the user is not a member of the team.
	NoAccess Role = iota

	// MemberRole allows tracking own time in the team.
	MemberRole

	// ManagerRole allows reviewing requests and adjusting time in the team.
	ManagerRole

	// AdminRole allows everything a manager can do plus managing members.
	AdminRole

	// SuperadminRole bypasses team membership entirely. It is never stored
	// on a membership row.
	SuperadminRole
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case NoAccess:
		return "NO_ACCESS"
	case MemberRole:
		return "MEMBER"
	case ManagerRole:
		return "MANAGER"
	case AdminRole:
		return "ADMIN"
	case SuperadminRole:
		return "SUPERADMIN"
	default:
		return "UNKNOWN"
	}
}

// ParseRole parses a role string.
func ParseRole(s string) Role {
	switch s {
	case "NO_ACCESS":
		return NoAccess
	case "MEMBER":
		return MemberRole
	case "MANAGER":
		return ManagerRole
	case "ADMIN":
		return AdminRole
	case "SUPERADMIN":
		return SuperadminRole
	default:
		return Role(-1)
	}
}

// CanManage reports whether the role may review requests and adjust time.
func (r Role) CanManage() bool {
	return r >= ManagerRole
}

// IsMembership reports whether the role can be stored on a team membership.
func (r Role) IsMembership() bool {
	return r >= MemberRole && r <= AdminRole
}

var (
	_ encoding.TextMarshaler   = Role(0)
	_ encoding.TextUnmarshaler = (*Role)(nil)
	_ driver.Valuer            = Role(0)
)

// ErrInvalidRole is returned when an invalid role is provided.
var ErrInvalidRole = errors.New("invalid role")

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	l := ParseRole(string(text))
	if l < 0 {
		return ErrInvalidRole
	}

	*r = l

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}

// Value implements driver.Valuer. Roles are stored by name.
func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

// Scan implements sql.Scanner.
func (r *Role) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidRole, src)
	}
}
