package database

import (
	"context"
	"strings"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/store"
)

type userStore struct{}

var _ store.UserStore = (*userStore)(nil)

// CreateUser implements store.UserStore.
func (s *userStore) CreateUser(ctx context.Context, tx db.Handler, email string, displayName string, isAdmin bool) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	query := tx.Rebind(`INSERT INTO users (email, display_name, admin, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP) RETURNING id;`)

	var id int64
	if err := tx.GetContext(ctx, &id, query, email, displayName, isAdmin); err != nil {
		return models.User{}, err //nolint:wrapcheck
	}

	return s.GetUserByID(ctx, tx, id)
}

// GetUserByID implements store.UserStore.
func (*userStore) GetUserByID(ctx context.Context, tx db.Handler, id int64) (models.User, error) {
	var m models.User
	query := tx.Rebind(`SELECT * FROM users WHERE id = ?;`)
	err := tx.GetContext(ctx, &m, query, id)
	return m, err //nolint:wrapcheck
}

// FindUserByEmail implements store.UserStore.
func (*userStore) FindUserByEmail(ctx context.Context, tx db.Handler, email string) (models.User, error) {
	var m models.User
	email = strings.ToLower(strings.TrimSpace(email))
	query := tx.Rebind(`SELECT * FROM users WHERE email = ?;`)
	err := tx.GetContext(ctx, &m, query, email)
	return m, err //nolint:wrapcheck
}

// GetAllUsers implements store.UserStore.
func (*userStore) GetAllUsers(ctx context.Context, tx db.Handler) ([]models.User, error) {
	var ms []models.User
	query := tx.Rebind(`SELECT * FROM users ORDER BY id;`)
	err := tx.SelectContext(ctx, &ms, query)
	return ms, err //nolint:wrapcheck
}

// SetDisplayName implements store.UserStore.
func (*userStore) SetDisplayName(ctx context.Context, tx db.Handler, id int64, displayName string) error {
	query := tx.Rebind(`UPDATE users SET display_name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	return execOne(ctx, tx, query, displayName, id)
}

// SetAdmin implements store.UserStore.
func (*userStore) SetAdmin(ctx context.Context, tx db.Handler, id int64, isAdmin bool) error {
	query := tx.Rebind(`UPDATE users SET admin = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?;`)
	return execOne(ctx, tx, query, isAdmin, id)
}
