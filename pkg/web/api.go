package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/jwk"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/charmbracelet/punch/pkg/schema"
	"github.com/charmbracelet/punch/pkg/worktime"
	"github.com/gorilla/mux"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// APIController registers the JSON API routes. Every route requires a
// bearer token.
func APIController(_ context.Context, kp jwk.Pair, r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(withAuth(kp))

	api.HandleFunc("/me", getMe).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", patchUser).Methods(http.MethodPatch)

	api.HandleFunc("/teams", postTeam).Methods(http.MethodPost)
	api.HandleFunc("/teams", getTeams).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id:[0-9]+}/members", getTeamMembers).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id:[0-9]+}/members", postTeamMember).Methods(http.MethodPost)
	api.HandleFunc("/teams/{id:[0-9]+}/sessions", getTeamSessions).Methods(http.MethodGet)

	api.HandleFunc("/sessions", postSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions", getSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/active", getActiveSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id:[0-9]+}/clock-out", postClockOut).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id:[0-9]+}/switch-team", postSwitchTeam).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id:[0-9]+}/breaks", getBreaks).Methods(http.MethodGet)

	api.HandleFunc("/breaks", postBreak).Methods(http.MethodPost)
	api.HandleFunc("/breaks/{id:[0-9]+}/end", postEndBreak).Methods(http.MethodPost)

	api.HandleFunc("/requests", postRequest).Methods(http.MethodPost)
	api.HandleFunc("/requests", getRequests).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id:[0-9]+}", getRequest).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id:[0-9]+}/comments", postComment).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id:[0-9]+}/comments", getComments).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id:[0-9]+}/review", postReview).Methods(http.MethodPost)

	api.HandleFunc("/adjustments", postAdjustment).Methods(http.MethodPost)
	api.HandleFunc("/adjustments", getAdjustments).Methods(http.MethodGet)
	api.HandleFunc("/adjustments/{id:[0-9]+}", patchAdjustment).Methods(http.MethodPatch)

	api.HandleFunc("/summary", getSummary).Methods(http.MethodGet)
}

// caller returns the backend and the authenticated user of a request.
func caller(r *http.Request) (*backend.Backend, proto.User) {
	return backend.Caller(r.Context())
}

// pathID returns the numeric id route variable.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func queryInt64(r *http.Request, name string) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil || i < 0 {
		return 0, schema.Invalid(name, "type", fmt.Sprintf("%s must be a positive integer", name))
	}
	return i, nil
}

func queryLimit(r *http.Request) (int, error) {
	n, err := queryInt64(r, "limit")
	if err != nil {
		return 0, err
	}
	switch {
	case n == 0:
		return defaultLimit, nil
	case n > maxLimit:
		return maxLimit, nil
	}
	return int(n), nil
}

// queryDate returns a YYYY-MM-DD date query parameter.
func queryDate(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", nil
	}
	date, ok := worktime.NormalizeDate(v)
	if !ok {
		return "", schema.Invalid(name, "date", name+" must be a YYYY-MM-DD date")
	}
	return date, nil
}

// queryTime returns a time query parameter given as RFC 3339 or as a date.
func queryTime(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(worktime.DateLayout, v); err == nil {
		return t, nil
	}
	return time.Time{}, schema.Invalid(name, "date", name+" must be an RFC 3339 time or a YYYY-MM-DD date")
}
