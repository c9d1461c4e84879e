package proto

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the backend wraps one of these, or
// is a validation error, or is internal.
var (
	// ErrUnauthenticated is returned when the caller has no valid identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the caller lacks the role for an action.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when an entity is absent or not visible to the
	// caller.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an entity is not in the state a transition
	// requires.
	ErrConflict = errors.New("conflict")
	// ErrPreconditionFailed is returned when a cross-entity rule is violated.
	ErrPreconditionFailed = errors.New("precondition failed")
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = fmt.Errorf("team %w", ErrNotFound)
	// ErrSessionNotFound is returned when a time session is not found.
	ErrSessionNotFound = fmt.Errorf("time session %w", ErrNotFound)
	// ErrBreakNotFound is returned when a break segment is not found.
	ErrBreakNotFound = fmt.Errorf("break segment %w", ErrNotFound)
	// ErrRequestNotFound is returned when a correction request is not found.
	ErrRequestNotFound = fmt.Errorf("correction request %w", ErrNotFound)
	// ErrAdjustmentNotFound is returned when an adjustment is not found.
	ErrAdjustmentNotFound = fmt.Errorf("adjustment %w", ErrNotFound)

	// ErrUserExist is returned when a user with the same email exists.
	ErrUserExist = fmt.Errorf("user already exists: %w", ErrConflict)
	// ErrMemberExist is returned when a user is already a team member.
	ErrMemberExist = fmt.Errorf("user is already a team member: %w", ErrConflict)
	// ErrAlreadyClockedIn is returned on clock-in with an open session.
	ErrAlreadyClockedIn = fmt.Errorf("already clocked in: %w", ErrConflict)
	// ErrSessionClosed is returned when a closed session is mutated.
	ErrSessionClosed = fmt.Errorf("time session is closed: %w", ErrConflict)
	// ErrSameTeam is returned when switching a session to its current team.
	ErrSameTeam = fmt.Errorf("session is already on this team: %w", ErrConflict)
	// ErrBreakOpen is returned when a break is started while one is open.
	ErrBreakOpen = fmt.Errorf("a break is already open: %w", ErrConflict)
	// ErrBreakEnded is returned when an ended break is ended again.
	ErrBreakEnded = fmt.Errorf("break segment already ended: %w", ErrConflict)
	// ErrRequestReviewed is returned when a reviewed request is reviewed
	// again.
	ErrRequestReviewed = fmt.Errorf("correction request already reviewed: %w", ErrConflict)

	// ErrRequestNotApproved is returned when an adjustment references a
	// request that is not approved.
	ErrRequestNotApproved = fmt.Errorf("source request is not approved: %w", ErrPreconditionFailed)
	// ErrRequestMismatch is returned when an adjustment references a request
	// of another user or team.
	ErrRequestMismatch = fmt.Errorf("source request belongs to another user or team: %w", ErrPreconditionFailed)
	// ErrNotDerivable is returned when an approved request carries no data
	// to derive an adjustment from.
	ErrNotDerivable = fmt.Errorf("cannot derive an adjustment from request: %w", ErrPreconditionFailed)
)
