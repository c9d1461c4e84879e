package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestWrapError(t *testing.T) {
	plain := errors.New("connection reset")
	undefinedTable := &pq.Error{Code: "42P01"}
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"passthrough", plain, plain},
		{"no rows", sql.ErrNoRows, ErrRecordNotFound},
		{"wrapped no rows", fmt.Errorf("get session: %w", sql.ErrNoRows), ErrRecordNotFound},
		{"pq unique", &pq.Error{Code: "23505"}, ErrDuplicateKey},
		{"pq foreign key", &pq.Error{Code: "23503"}, ErrConstraint},
		{"pq check", &pq.Error{Code: "23514"}, ErrConstraint},
		{"pq closed session trigger", &pq.Error{Code: "P0001"}, ErrConstraint},
		{"pq other", undefinedTable, undefinedTable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WrapError(c.in); !errors.Is(got, c.want) {
				t.Errorf("WrapError(%v) => %v, want %v", c.in, got, c.want)
			}
		})
	}
}
