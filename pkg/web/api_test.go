package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/jwk"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/charmbracelet/punch/pkg/store"
	"github.com/charmbracelet/punch/pkg/store/database"
	"github.com/charmbracelet/punch/pkg/test"
	"github.com/matryer/is"
)

type server struct {
	t       *testing.T
	handler http.Handler
	cfg     *config.Config
	kp      jwk.Pair
	be      *backend.Backend
	ctx     context.Context
}

func newServer(t *testing.T) *server {
	t.Helper()
	is := is.New(t)

	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Auth.KeyPath = filepath.Join(cfg.DataPath, "keys", "token_ed25519")

	ctx := config.WithContext(context.TODO(), cfg)
	ctx = log.WithContext(ctx, log.New(io.Discard))
	dbx := test.OpenMigrated(ctx, t)
	st := database.New(ctx, dbx)
	be := backend.New(ctx, cfg, dbx, st, backend.WithClock(test.FixedClock()))
	ctx = db.WithContext(ctx, dbx)
	ctx = store.WithContext(ctx, st)
	ctx = backend.WithContext(ctx, be)

	h, err := NewRouter(ctx)
	is.NoErr(err)
	kp, err := jwk.NewPair(cfg)
	is.NoErr(err)

	return &server{t: t, handler: h, cfg: cfg, kp: kp, be: be, ctx: ctx}
}

func (s *server) user(email string) proto.User {
	s.t.Helper()
	u, err := s.be.CreateUser(s.ctx, email, proto.UserOptions{})
	if err != nil {
		s.t.Fatal(err)
	}
	return u
}

func (s *server) token(u proto.User) string {
	s.t.Helper()
	tok, err := s.kp.NewToken(s.cfg, u.Email(), u.ID(), time.Now(), time.Hour)
	if err != nil {
		s.t.Fatal(err)
	}
	return tok
}

// do sends a request as u, or anonymously when u is nil, and decodes the
// JSON response into out when given.
func (s *server) do(u proto.User, method, path string, body any, out any) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		bts, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		r = bytes.NewReader(bts)
	}

	req := httptest.NewRequest(method, path, r)
	if u != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(u))
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			s.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec
}

type apiError struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
		Fields  []struct {
			Field string `json:"field"`
			Rule  string `json:"rule"`
		} `json:"fields"`
	} `json:"error"`
}

func TestHealth(t *testing.T) {
	is := is.New(t)
	s := newServer(t)

	is.Equal(s.do(nil, http.MethodGet, "/livez", nil, nil).Code, http.StatusOK)
	is.Equal(s.do(nil, http.MethodGet, "/readyz", nil, nil).Code, http.StatusOK)
}

func TestJWKS(t *testing.T) {
	is := is.New(t)
	s := newServer(t)

	var set struct {
		Keys []struct {
			Kid string `json:"kid"`
			Alg string `json:"alg"`
			Kty string `json:"kty"`
		} `json:"keys"`
	}
	rec := s.do(nil, http.MethodGet, "/.well-known/jwks.json", nil, &set)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(len(set.Keys), 1)
	is.Equal(set.Keys[0].Kid, s.kp.JWK().KeyID)
	is.Equal(set.Keys[0].Alg, "EdDSA")
	is.Equal(set.Keys[0].Kty, "OKP")
}

func TestUnauthenticated(t *testing.T) {
	is := is.New(t)
	s := newServer(t)

	var e apiError
	rec := s.do(nil, http.MethodGet, "/api/v1/me", nil, &e)
	is.Equal(rec.Code, http.StatusUnauthorized)
	is.Equal(e.Error.Kind, KindUnauthenticated)
	is.True(rec.Header().Get("WWW-Authenticate") != "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	is.Equal(rr.Code, http.StatusUnauthorized)

	// A token for a user that no longer matches is rejected.
	u := s.user("bob@example.com")
	tok, err := s.kp.NewToken(s.cfg, "mallory@example.com", u.ID(), time.Now(), time.Hour)
	is.NoErr(err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr = httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	is.Equal(rr.Code, http.StatusUnauthorized)
}

func TestMe(t *testing.T) {
	is := is.New(t)
	s := newServer(t)
	u := s.user("bob@example.com")

	var me meResponse
	rec := s.do(u, http.MethodGet, "/api/v1/me", nil, &me)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(me.ID, u.ID())
	is.Equal(me.Email, "bob@example.com")
	is.True(!me.Superadmin)
	is.True(rec.Header().Get(RequestIDHeader) != "")
}

func TestNotFoundRoute(t *testing.T) {
	is := is.New(t)
	s := newServer(t)

	var e apiError
	rec := s.do(nil, http.MethodGet, "/nope", nil, &e)
	is.Equal(rec.Code, http.StatusNotFound)
	is.Equal(e.Error.Kind, KindNotFound)
}

// TestReviewWorkflow walks a member and a manager through the request
// workflow over HTTP.
func TestReviewWorkflow(t *testing.T) {
	is := is.New(t)
	s := newServer(t)
	admin := s.user("alice@example.com")
	member := s.user("bob@example.com")

	var team teamResponse
	rec := s.do(admin, http.MethodPost, "/api/v1/teams", map[string]any{"name": "Core", "color": "#00ff00"}, &team)
	is.Equal(rec.Code, http.StatusCreated)

	var m proto.TeamMember
	rec = s.do(admin, http.MethodPost, fmt.Sprintf("/api/v1/teams/%d/members", team.ID), map[string]any{"email": "BOB@example.com", "role": "member"}, &m)
	is.Equal(rec.Code, http.StatusCreated)
	is.Equal(m.UserID, member.ID())
	is.Equal(m.Role, access.MemberRole)

	var req requestResponse
	rec = s.do(member, http.MethodPost, "/api/v1/requests", map[string]any{
		"team_id":     team.ID,
		"type":        "MISSED_BREAK",
		"description": "coffee",
		"payload":     map[string]any{"date": "2024-01-12", "time_from": "10:00", "time_to": "10:15", "break_type": "BREAK"},
	}, &req)
	is.Equal(rec.Code, http.StatusCreated)
	is.Equal(req.Status, models.StatusPending)

	// A member may not review.
	var e apiError
	rec = s.do(member, http.MethodPost, fmt.Sprintf("/api/v1/requests/%d/review", req.ID), map[string]any{"decision": "APPROVED"}, &e)
	is.Equal(rec.Code, http.StatusForbidden)
	is.Equal(e.Error.Kind, KindForbidden)

	// The same member may comment on their own request.
	var c commentResponse
	rec = s.do(member, http.MethodPost, fmt.Sprintf("/api/v1/requests/%d/comments", req.ID), map[string]any{"content": "please"}, &c)
	is.Equal(rec.Code, http.StatusCreated)
	is.Equal(c.AuthorID, member.ID())

	var review struct {
		Request    requestResponse     `json:"request"`
		Adjustment *adjustmentResponse `json:"adjustment"`
	}
	rec = s.do(admin, http.MethodPost, fmt.Sprintf("/api/v1/requests/%d/review", req.ID), map[string]any{"decision": "APPROVED", "create_adjustment": true}, &review)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(review.Request.Status, models.StatusApproved)
	is.True(review.Adjustment != nil)
	is.Equal(review.Adjustment.Minutes, 15)
	is.Equal(review.Adjustment.Type, models.AdjustSubtractTime)

	rec = s.do(admin, http.MethodPost, fmt.Sprintf("/api/v1/requests/%d/review", req.ID), map[string]any{"decision": "REJECTED"}, &e)
	is.Equal(rec.Code, http.StatusBadRequest)
	is.Equal(e.Error.Kind, KindConflict)

	var comments []commentResponse
	rec = s.do(admin, http.MethodGet, fmt.Sprintf("/api/v1/requests/%d/comments", req.ID), nil, &comments)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(len(comments), 1)
}

func TestSessionsOverHTTP(t *testing.T) {
	is := is.New(t)
	s := newServer(t)
	u := s.user("bob@example.com")

	var team teamResponse
	s.do(u, http.MethodPost, "/api/v1/teams", map[string]any{"name": "Solo"}, &team)

	var sess sessionResponse
	rec := s.do(u, http.MethodPost, "/api/v1/sessions", map[string]any{"team_id": team.ID}, &sess)
	is.Equal(rec.Code, http.StatusCreated)
	is.True(sess.Open)
	is.True(sess.ClockOut == nil)

	var e apiError
	rec = s.do(u, http.MethodPost, "/api/v1/sessions", map[string]any{"team_id": team.ID}, &e)
	is.Equal(rec.Code, http.StatusBadRequest)
	is.Equal(e.Error.Kind, KindConflict)

	var brk breakResponse
	rec = s.do(u, http.MethodPost, "/api/v1/breaks", map[string]any{"session_id": sess.ID, "break_type": "LUNCH"}, &brk)
	is.Equal(rec.Code, http.StatusCreated)

	rec = s.do(u, http.MethodPost, fmt.Sprintf("/api/v1/breaks/%d/end", brk.ID), nil, &brk)
	is.Equal(rec.Code, http.StatusOK)
	is.True(brk.BreakEnd != nil)

	var active sessionResponse
	rec = s.do(u, http.MethodGet, "/api/v1/sessions/active", nil, &active)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(active.ID, sess.ID)

	rec = s.do(u, http.MethodPost, fmt.Sprintf("/api/v1/sessions/%d/clock-out", sess.ID), nil, &sess)
	is.Equal(rec.Code, http.StatusOK)
	is.True(!sess.Open)

	rec = s.do(u, http.MethodPost, fmt.Sprintf("/api/v1/sessions/%d/clock-out", sess.ID), nil, &e)
	is.Equal(rec.Code, http.StatusBadRequest)
	is.Equal(e.Error.Kind, KindConflict)

	rec = s.do(u, http.MethodGet, "/api/v1/sessions/active", nil, &e)
	is.Equal(rec.Code, http.StatusNotFound)

	var sessions []sessionResponse
	rec = s.do(u, http.MethodGet, "/api/v1/sessions?limit=10", nil, &sessions)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(len(sessions), 1)

	var breaks []breakResponse
	rec = s.do(u, http.MethodGet, fmt.Sprintf("/api/v1/sessions/%d/breaks", sess.ID), nil, &breaks)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(len(breaks), 1)

	var summary struct {
		TotalMinutes int `json:"total_minutes"`
	}
	rec = s.do(u, http.MethodGet, "/api/v1/summary?from=2024-01-15&to=2024-01-16", nil, &summary)
	is.Equal(rec.Code, http.StatusOK)
	is.Equal(summary.TotalMinutes, 0)
}

func TestValidationErrors(t *testing.T) {
	is := is.New(t)
	s := newServer(t)
	u := s.user("bob@example.com")

	var e apiError
	rec := s.do(u, http.MethodPost, "/api/v1/sessions", map[string]any{"team": 1}, &e)
	is.Equal(rec.Code, http.StatusBadRequest)
	is.Equal(e.Error.Kind, KindValidationFailed)
	is.Equal(e.Error.Fields[0].Field, "team")
	is.Equal(e.Error.Fields[0].Rule, "unknown")

	rec = s.do(u, http.MethodPost, "/api/v1/adjustments", map[string]any{
		"user_id": 1, "team_id": 1, "type": "OVERRIDE", "minutes": -3, "effective_date": "2024-01-01",
	}, &e)
	is.Equal(rec.Code, http.StatusBadRequest)
	is.Equal(e.Error.Fields[0].Rule, "override_gte")

	rec = s.do(u, http.MethodGet, "/api/v1/requests?status=DONE", nil, &e)
	is.Equal(rec.Code, http.StatusBadRequest)
	is.Equal(e.Error.Fields[0].Field, "status")

	rec = s.do(u, http.MethodPatch, "/api/v1/users/1", map[string]any{"display_name": "Bobby"}, &e)
	is.Equal(rec.Code, http.StatusForbidden)
}
