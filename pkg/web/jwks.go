package web

import (
	"net/http"

	"github.com/charmbracelet/punch/pkg/jwk"
	"github.com/gorilla/mux"
)

// JWKSController registers the route publishing the token verification key.
func JWKSController(kp jwk.Pair, r *mux.Router) {
	set := kp.JWKS()
	r.HandleFunc("/.well-known/jwks.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		renderJSON(w, http.StatusOK, set)
	}).Methods(http.MethodGet)
}
