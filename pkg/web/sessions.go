package web

import (
	"net/http"

	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/schema"
)

func postSession(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var in schema.ClockIn
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	s, err := be.ClockIn(r.Context(), user, in.TeamID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newSessionResponse(s))
}

func getSessions(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	filter, err := sessionFilter(r)
	if err != nil {
		renderError(w, r, err)
		return
	}

	sessions, err := be.Sessions(r.Context(), user, filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, mapSlice(sessions, newSessionResponse))
}

func getActiveSession(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	s, err := be.ActiveSession(r.Context(), user)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newSessionResponse(s))
}

func postClockOut(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	s, err := be.ClockOut(r.Context(), user, pathID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newSessionResponse(s))
}

func postSwitchTeam(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var in schema.SwitchTeam
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	s, err := be.SwitchTeam(r.Context(), user, pathID(r), in.TeamID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newSessionResponse(s))
}

func getBreaks(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	breaks, err := be.Breaks(r.Context(), user, pathID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, mapSlice(breaks, newBreakResponse))
}

func postBreak(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var in schema.StartBreak
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	b, err := be.StartBreak(r.Context(), user, in.SessionID, models.BreakType(in.BreakType))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newBreakResponse(b))
}

func postEndBreak(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	b, err := be.EndBreak(r.Context(), user, pathID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newBreakResponse(b))
}
