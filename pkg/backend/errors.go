package backend

import (
	"errors"

	"github.com/charmbracelet/punch/pkg/db"
)

// notFound replaces a missing-row error with the given sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// isNotFound reports whether err is a missing-row error.
func isNotFound(err error) bool {
	return errors.Is(db.WrapError(err), db.ErrRecordNotFound)
}

// isDuplicate reports whether err is a uniqueness violation.
func isDuplicate(err error) bool {
	return errors.Is(db.WrapError(err), db.ErrDuplicateKey)
}

// isConstraint reports whether err is a check or trigger violation.
func isConstraint(err error) bool {
	return errors.Is(db.WrapError(err), db.ErrConstraint)
}
