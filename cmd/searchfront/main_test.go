package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/searchfront/pkg/api"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimLeft(r.URL.Path, "/") {
		case "autosuggest":
			_, _ = w.Write([]byte(`[{"raw":"russia","highlighted":"<b>rus</b>sia"}]`))
		case "fact_check":
			_, _ = w.Write([]byte(`{"score":0.25}`))
		case "alice":
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = w.Write([]byte("data: {\"type\":\"beginSearch\",\"query\":\"q\"}\n\ndata: {\"type\":\"done\",\"state\":\"abc\"}\n\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("REPORTERS_FILE", t.TempDir()+"/none.yaml")
	t.Setenv("GATE_TYPE", "none")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root, c := newRootCommand(&out)
	defer c.teardown()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSuggestCommandHighlightsPrefix(t *testing.T) {
	srv := newBackend(t)

	out, err := execute(t, "--base", srv.URL+"/", "suggest", "rus")
	require.NoError(t, err)
	assert.Equal(t, ansiBold+"rus"+ansiReset+"sia\n", out)
}

func TestFactCheckCommandJSON(t *testing.T) {
	srv := newBackend(t)

	out, err := execute(t, "--base", srv.URL+"/", "--json", "factcheck", "--claim", "c", "--evidence", "e")
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":0.25}`, out)
}

func TestAliceCommandStopsAtDone(t *testing.T) {
	srv := newBackend(t)

	out, err := execute(t, "--base", srv.URL+"/", "alice", "hi")
	require.NoError(t, err)
	assert.Contains(t, out, "[state: abc]")
}

func TestCommandSurfacesHTTPError(t *testing.T) {
	srv := newBackend(t)

	_, err := execute(t, "--base", srv.URL+"/", "webgraph", "knows", "example.com")
	var httpErr *api.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestEndpointsCommandListsCatalog(t *testing.T) {
	out, err := execute(t, "endpoints")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), len(api.Endpoints()))
}
