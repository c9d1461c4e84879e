package store

// Store is an interface for managing users, teams, recorded time, and
// correction requests.
type Store interface {
	UserStore
	TeamStore
	SessionStore
	BreakStore
	RequestStore
	CommentStore
	AdjustmentStore
}
