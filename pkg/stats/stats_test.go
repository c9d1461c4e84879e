package stats

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestHandlerServesBuildInfo(t *testing.T) {
	is := is.New(t)
	RegisterBuildInfo("v1.2.3", "abcdef0")

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	is.NoErr(err)
	defer res.Body.Close() //nolint:errcheck
	is.Equal(res.StatusCode, http.StatusOK)

	body, err := io.ReadAll(res.Body)
	is.NoErr(err)
	is.True(strings.Contains(string(body), `punch_build_info{commit="abcdef0",version="v1.2.3"} 1`))
}
