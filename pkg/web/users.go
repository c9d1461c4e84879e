package web

import (
	"net/http"

	"github.com/charmbracelet/punch/pkg/schema"
)

func getMe(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)
	renderJSON(w, http.StatusOK, meResponse{
		userResponse: newUserResponse(user),
		Superadmin:   be.IsSuperadmin(user),
	})
}

func patchUser(w http.ResponseWriter, r *http.Request) {
	be, user := caller(r)

	var in schema.RenameUser
	if err := schema.Decode(r.Body, &in); err != nil {
		renderError(w, r, err)
		return
	}

	u, err := be.RenameUser(r.Context(), user, pathID(r), in.DisplayName)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newUserResponse(u))
}
