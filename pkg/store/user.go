package store

import (
	"context"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
)

// UserStore is an interface for managing users.
type UserStore interface {
	GetUserByID(ctx context.Context, h db.Handler, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, h db.Handler, email string) (models.User, error)
	GetAllUsers(ctx context.Context, h db.Handler) ([]models.User, error)
	CreateUser(ctx context.Context, h db.Handler, email string, displayName string, isAdmin bool) (models.User, error)
	SetDisplayName(ctx context.Context, h db.Handler, id int64, displayName string) error
	SetAdmin(ctx context.Context, h db.Handler, id int64, isAdmin bool) error
}
