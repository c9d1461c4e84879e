package backend

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/proto"
)

// ErrInvalidEmail is returned when an email address is malformed.
var ErrInvalidEmail = errors.New("invalid email address")

// UserByID finds a user by id.
func (d *Backend) UserByID(ctx context.Context, id int64) (proto.User, error) {
	if u, ok := d.cache.Get(id); ok {
		return u, nil
	}

	m, err := d.store.GetUserByID(ctx, d.db, id)
	if err != nil {
		return nil, notFound(err, proto.ErrUserNotFound)
	}

	u := &user{user: m}
	d.cache.Set(id, u)
	return u, nil
}

// UserByEmail finds a user by email.
func (d *Backend) UserByEmail(ctx context.Context, email string) (proto.User, error) {
	m, err := d.store.FindUserByEmail(ctx, d.db, email)
	if err != nil {
		return nil, notFound(err, proto.ErrUserNotFound)
	}

	return &user{user: m}, nil
}

// Users returns all users.
func (d *Backend) Users(ctx context.Context) ([]proto.User, error) {
	ms, err := d.store.GetAllUsers(ctx, d.db)
	if err != nil {
		return nil, err
	}

	users := make([]proto.User, 0, len(ms))
	for _, m := range ms {
		users = append(users, &user{user: m})
	}
	return users, nil
}

// CreateUser creates a new user.
func (d *Backend) CreateUser(ctx context.Context, email string, opts proto.UserOptions) (proto.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	m, err := d.store.CreateUser(ctx, d.db, email, strings.TrimSpace(opts.DisplayName), opts.Admin)
	if err != nil {
		if isDuplicate(err) {
			return nil, proto.ErrUserExist
		}
		return nil, err
	}

	d.logger.Info("created user", "id", m.ID, "email", m.Email)
	return &user{user: m}, nil
}

// SetDisplayName changes a user's display name.
func (d *Backend) SetDisplayName(ctx context.Context, id int64, name string) (proto.User, error) {
	defer d.cache.Delete(id)

	if err := d.store.SetDisplayName(ctx, d.db, id, strings.TrimSpace(name)); err != nil {
		return nil, notFound(err, proto.ErrUserNotFound)
	}

	return d.UserByID(ctx, id)
}

// RenameUser changes another user's display name on behalf of caller.
// Only superadmins may rename users.
func (d *Backend) RenameUser(ctx context.Context, caller proto.User, id int64, name string) (proto.User, error) {
	if !d.IsSuperadmin(caller) {
		return nil, proto.ErrForbidden
	}

	u, err := d.SetDisplayName(ctx, id, name)
	if err != nil {
		return nil, err
	}

	d.logger.Info("renamed user", "id", id, "by", caller.ID())
	return u, nil
}

// SetAdmin grants or revokes the superadmin attribute of a user.
func (d *Backend) SetAdmin(ctx context.Context, id int64, admin bool) error {
	defer d.cache.Delete(id)

	if err := d.store.SetAdmin(ctx, d.db, id, admin); err != nil {
		return notFound(err, proto.ErrUserNotFound)
	}

	return nil
}

// ValidateEmail is a loose email sanity check. Delivery is not verified.
func ValidateEmail(email string) error {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n#") {
		return ErrInvalidEmail
	}
	return nil
}

type user struct {
	user models.User
}

var _ proto.User = (*user)(nil)

// ID implements proto.User.
func (u *user) ID() int64 {
	return u.user.ID
}

// Email implements proto.User.
func (u *user) Email() string {
	return u.user.Email
}

// DisplayName implements proto.User.
func (u *user) DisplayName() string {
	return u.user.DisplayName
}

// IsAdmin implements proto.User.
func (u *user) IsAdmin() bool {
	return u.user.Admin
}

// CreatedAt implements proto.User.
func (u *user) CreatedAt() time.Time {
	return u.user.CreatedAt
}

// systemUser is the identity of the local operator running CLI commands.
type systemUser struct{}

var _ proto.User = systemUser{}

// SystemUser returns the operator identity. It passes every team-scoped
// check and must never be handed to the HTTP layer.
func SystemUser() proto.User { return systemUser{} }

func (systemUser) ID() int64            { return 0 }
func (systemUser) Email() string        { return "" }
func (systemUser) DisplayName() string  { return "system" }
func (systemUser) IsAdmin() bool        { return true }
func (systemUser) CreatedAt() time.Time { return time.Time{} }
