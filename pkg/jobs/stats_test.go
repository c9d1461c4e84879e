package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/charmbracelet/punch/pkg/store/database"
	"github.com/charmbracelet/punch/pkg/test"
	"github.com/matryer/is"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func TestStatsRegistered(t *testing.T) {
	is := is.New(t)

	var found bool
	for _, j := range List() {
		if j.Name == "stats" {
			found = true
		}
	}
	is.True(found)
}

func TestStatsSpec(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	ctx := config.WithContext(context.TODO(), cfg)

	is.Equal(statsRefresh{}.Spec(ctx), cfg.Jobs.Stats)

	cfg.Stats.Enabled = false
	is.Equal(statsRefresh{}.Spec(ctx), "")
}

func TestStatsRefresh(t *testing.T) {
	is := is.New(t)

	cfg := config.DefaultConfig()
	ctx := config.WithContext(context.TODO(), cfg)
	dbx := test.OpenMigrated(ctx, t)
	be := backend.New(ctx, cfg, dbx, database.New(ctx, dbx), backend.WithClock(test.FixedClock()))
	ctx = backend.WithContext(ctx, be)

	u, err := be.CreateUser(ctx, "bob@example.com", proto.UserOptions{})
	is.NoErr(err)
	team, err := be.CreateTeam(ctx, u, "Core", "")
	is.NoErr(err)
	_, err = be.ClockIn(ctx, u, team.ID())
	is.NoErr(err)

	statsRefresh{}.Func(ctx)()

	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	is.True(strings.Contains(body, "punch_sessions_open 1\n"))
	is.True(strings.Contains(body, "punch_requests_pending 0\n"))
}
