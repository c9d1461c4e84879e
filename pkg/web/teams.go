package web

import (
	"net/http"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/schema"
)

func postTeam(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var in schema.CreateTeam
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	t, err := be.CreateTeam(r.Context(), user, in.Name, in.Color)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newTeamResponse(t))
}

func getTeams(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	teams, err := be.Teams(r.Context(), user)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		res = append(res, newTeamResponse(t))
	}
	renderJSON(w, http.StatusOK, res)
}

func getTeamMembers(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	members, err := be.TeamMembers(r.Context(), user, pathID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, members)
}

func postTeamMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	be, user := caller(r)

	var in schema.AddMember
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	userID := in.UserID
	if userID == 0 {
		u, err := be.UserByEmail(ctx, in.Email)
		if err != nil {
			renderError(w, r, err)
			return
		}
		userID = u.ID()
	}

	m, err := be.AddTeamMember(ctx, user, pathID(r), userID, access.ParseRole(in.Role))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, m)
}

func getTeamSessions(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	filter, err := sessionFilter(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	sessions, err := be.TeamSessions(r.Context(), user, pathID(r), filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, mapSlice(sessions, newSessionResponse))
}

func sessionFilter(r *http.Request) (backend.SessionFilter, error) {
	var f backend.SessionFilter
	var err error
	if f.TeamID, err = queryInt64(r, "team_id"); err != nil {
		return f, err
	}
	if f.From, err = queryTime(r, "from"); err != nil {
		return f, err
	}
	if f.To, err = queryTime(r, "to"); err != nil {
		return f, err
	}
	f.Limit, err = queryLimit(r)
	return f, err
}
