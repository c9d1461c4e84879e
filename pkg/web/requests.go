package web

import (
	"net/http"
	"strconv"

	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/schema"
)

func postRequest(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var in schema.SubmitRequest
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	req, err := be.SubmitRequest(r.Context(), user, &in)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newRequestResponse(req))
}

func getRequests(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var filter backend.RequestFilter
	var err error
	if filter.TeamID, err = queryInt64(r, "team_id"); err != nil {
		renderError(w, r, err)
		return
	}
	if v := r.URL.Query().Get("managed"); v != "" {
		if filter.Managed, err = strconv.ParseBool(v); err != nil {
			renderError(w, r, schema.Invalid("managed", "type", "managed must be a boolean"))
			return
		}
	}
	switch s := models.RequestStatus(r.URL.Query().Get("status")); s {
	case "", models.StatusPending, models.StatusApproved, models.StatusRejected:
		filter.Status = s
	default:
		renderError(w, r, schema.Invalid("status", "oneof", "status must be one of [PENDING APPROVED REJECTED]"))
		return
	}
	if filter.Limit, err = queryLimit(r); err != nil {
		renderError(w, r, err)
		return
	}

	reqs, err := be.Requests(r.Context(), user, filter)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, mapSlice(reqs, newRequestResponse))
}

func getRequest(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	req, err := be.Request(r.Context(), user, pathID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newRequestResponse(req))
}

func postComment(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var in schema.Comment
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	c, err := be.Comment(r.Context(), user, pathID(r), &in)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newCommentResponse(c))
}

func getComments(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	comments, err := be.Comments(r.Context(), user, pathID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, mapSlice(comments, newCommentResponse))
}

func postReview(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var in schema.Review
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	req, adj, err := be.Review(r.Context(), user, pathID(r), &in)
	if err != nil {
		renderError(w, r, err)
		return
	}

	res := reviewResponse{Request: newRequestResponse(req)}
	if adj != nil {
		a := newAdjustmentResponse(*adj)
		res.Adjustment = &a
	}
	renderJSON(w, http.StatusOK, res)
}
