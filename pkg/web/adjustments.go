package web

import (
	"net/http"

	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/schema"
)

func postAdjustment(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var in schema.CreateAdjustment
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	adj, err := be.CreateAdjustment(r.Context(), user, &in)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newAdjustmentResponse(adj))
}

func getAdjustments(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var filter backend.AdjustmentFilter
	var err error
	if filter.UserID, err = queryInt64(r, "user_id"); err != nil {
		renderError(w, r, err)
		return
	}
	if filter.TeamID, err = queryInt64(r, "team_id"); err != nil {
		renderError(w, r, err)
		return
	}
	if filter.RequestID, err = queryInt64(r, "request_id"); err != nil {
		renderError(w, r, err)
		return
	}
	if filter.From, err = queryDate(r, "from"); err != nil {
		renderError(w, r, err)
		return
	}
	if filter.To, err = queryDate(r, "to"); err != nil {
		renderError(w, r, err)
		return
	}
	if filter.Limit, err = queryLimit(r); err != nil {
		renderError(w, r, err)
		return
	}

	adjs, err := be.Adjustments(r.Context(), user, filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, mapSlice(adjs, newAdjustmentResponse))
}

func patchAdjustment(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var in schema.AmendAdjustment
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	adj, err := be.AmendAdjustment(r.Context(), user, pathID(r), &in)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newAdjustmentResponse(adj))
}

func getSummary(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var filter backend.SummaryFilter
	var err error
	if filter.UserID, err = queryInt64(r, "user_id"); err != nil {
		renderError(w, r, err)
		return
	}
	if filter.TeamID, err = queryInt64(r, "team_id"); err != nil {
		renderError(w, r, err)
		return
	}
	if filter.From, err = queryDate(r, "from"); err != nil {
		renderError(w, r, err)
		return
	}
	if filter.To, err = queryDate(r, "to"); err != nil {
		renderError(w, r, err)
		return
	}

	s, err := be.TimeSummary(r.Context(), user, filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, s)
}
