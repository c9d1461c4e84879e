package serve

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/punch/pkg/backend"
	"github.com/charmbracelet/punch/pkg/config"
	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/store"
	"github.com/charmbracelet/punch/pkg/store/database"
	"github.com/charmbracelet/punch/pkg/test"
	"github.com/matryer/is"
)

func TestServerLifecycle(t *testing.T) {
	is := is.New(t)

	cfg := config.DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Auth.KeyPath = filepath.Join(cfg.DataPath, "keys", "token_ed25519")
	cfg.HTTP.ListenAddr = test.ListenAddr(t)
	cfg.Stats.ListenAddr = test.ListenAddr(t)

	ctx := config.WithContext(context.TODO(), cfg)
	ctx = log.WithContext(ctx, log.New(io.Discard))
	dbx := test.OpenMigrated(ctx, t)
	st := database.New(ctx, dbx)
	ctx = db.WithContext(ctx, dbx)
	ctx = store.WithContext(ctx, st)
	ctx = backend.WithContext(ctx, backend.New(ctx, cfg, dbx, st))

	s, err := NewServer(ctx)
	is.NoErr(err)

	errc := make(chan error, 1)
	go func() { errc <- s.Start() }()

	get := func(url string) int {
		for i := 0; i < 50; i++ {
			res, err := http.Get(url) //nolint:gosec,noctx
			if err == nil {
				res.Body.Close() //nolint:errcheck
				return res.StatusCode
			}
			time.Sleep(20 * time.Millisecond)
		}
		return 0
	}

	is.Equal(get("http://"+cfg.HTTP.ListenAddr+"/readyz"), http.StatusOK)
	is.Equal(get("http://"+cfg.Stats.ListenAddr+"/metrics"), http.StatusOK)

	sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	is.NoErr(s.Shutdown(sctx))
	is.NoErr(<-errc)
}
