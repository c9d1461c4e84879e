package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/jwk"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/charmbracelet/punch/pkg/schema"
)

// Error kinds reported in error bodies.
const (
	KindUnauthenticated    = "Unauthenticated"
	KindForbidden          = "Forbidden"
	KindNotFound           = "NotFound"
	KindValidationFailed   = "ValidationFailed"
	KindConflict           = "Conflict"
	KindPreconditionFailed = "PreconditionFailed"
	KindInternal           = "Internal"
)

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string              `json:"kind"`
	Message string              `json:"message"`
	Fields  []schema.FieldError `json:"fields,omitempty"`
}

func renderStatus(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
		io.WriteString(w, fmt.Sprintf("%d %s", code, http.StatusText(code))) //nolint:errcheck,gosec
	}
}

func renderJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("error encoding json", "err", err)
	}
}

// renderError writes the error body matching err. Unexpected errors are
// logged and reported without detail.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code, detail := errorStatus(err)
	if code == http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("internal error", "err", err)
	}
	renderJSON(w, code, errorResponse{Error: detail})
}

func errorStatus(err error) (int, errorDetail) {
	var ve *schema.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, errorDetail{Kind: KindValidationFailed, Message: ve.Error(), Fields: ve.Fields}
	case errors.Is(err, proto.ErrUnauthenticated), errors.Is(err, jwk.ErrInvalidToken):
		return http.StatusUnauthorized, errorDetail{Kind: KindUnauthenticated, Message: proto.ErrUnauthenticated.Error()}
	case errors.Is(err, proto.ErrForbidden):
		return http.StatusForbidden, errorDetail{Kind: KindForbidden, Message: err.Error()}
	case errors.Is(err, proto.ErrNotFound):
		return http.StatusNotFound, errorDetail{Kind: KindNotFound, Message: err.Error()}
	case errors.Is(err, proto.ErrConflict):
		return http.StatusBadRequest, errorDetail{Kind: KindConflict, Message: err.Error()}
	case errors.Is(err, proto.ErrPreconditionFailed):
		return http.StatusBadRequest, errorDetail{Kind: KindPreconditionFailed, Message: err.Error()}
	case errors.Is(err, backend.ErrInvalidEmail), errors.Is(err, access.ErrInvalidRole):
		return http.StatusBadRequest, errorDetail{Kind: KindValidationFailed, Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorDetail{Kind: KindInternal, Message: "internal server error"}
	}
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, fmt.Errorf("route %w", proto.ErrNotFound))
}

func renderMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: errorDetail{
		Kind:    KindValidationFailed,
		Message: http.StatusText(http.StatusMethodNotAllowed),
	}})
}
