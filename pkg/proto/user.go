package proto

import "time"

// User is an interface representing a user.
type User interface {
	// ID returns the user's ID.
	ID() int64
	// Email returns the user's email address.
	Email() string
	// DisplayName returns the user's display name.
	DisplayName() string
	// IsAdmin returns whether the user is a superadmin by attribute.
	IsAdmin() bool
	// CreatedAt returns when the user was created.
	CreatedAt() time.Time
}

// UserOptions are options for creating a user.
type UserOptions struct {
	// Admin is whether the user is a superadmin.
	Admin bool
	// DisplayName is the user's display name.
	DisplayName string
}
