package proto

import (
	"errors"
	"testing"
)

func TestEntityErrorsWrapKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{ErrSessionNotFound, ErrNotFound},
		{ErrBreakNotFound, ErrNotFound},
		{ErrAlreadyClockedIn, ErrConflict},
		{ErrSameTeam, ErrConflict},
		{ErrRequestReviewed, ErrConflict},
		{ErrRequestNotApproved, ErrPreconditionFailed},
	}
	for _, c := range cases {
		if !errors.Is(c.err, c.kind) {
			t.Errorf("errors.Is(%v, %v) => false, want true", c.err, c.kind)
		}
	}
	if errors.Is(ErrSessionNotFound, ErrConflict) {
		t.Errorf("errors.Is(%v, %v) => true, want false", ErrSessionNotFound, ErrConflict)
	}
}
