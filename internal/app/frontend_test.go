package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/searchfront/internal/config"
	"github.com/samvad-hq/searchfront/internal/ratelimit"
	"github.com/samvad-hq/searchfront/pkg/api"
	"github.com/samvad-hq/searchfront/pkg/httpclient"
	"github.com/samvad-hq/searchfront/pkg/reporters"
)

type recordingReporter struct {
	mu   sync.Mutex
	seen []reporters.Interaction
}

func (r *recordingReporter) ID() string   { return "rec" }
func (r *recordingReporter) Type() string { return "recording" }
func (r *recordingReporter) Report(_ context.Context, in reporters.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, in)
	return nil
}

func (r *recordingReporter) interactions() []reporters.Interaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]reporters.Interaction(nil), r.seen...)
}

type fakeSearchAPI struct {
	mu        sync.Mutex
	searches  int
	stored    api.ImprovementStoreParams
	storeFail bool
	bang      bool
}

func (f *fakeSearchAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	switch strings.TrimLeft(r.URL.Path, "/") {
	case "search":
		f.searches++
		if f.bang {
			_, _ = w.Write([]byte(`{"type":"bang","bang":{"t":"w","u":"https://w/{{{s}}}"},"redirectTo":"https://w/cats"}`))
			return
		}
		_, _ = w.Write([]byte(`{"type":"websites","numHits":2,"webpages":[{"url":"https://a.example","snippet":{"type":"normal"}},{"url":"https://b.example","snippet":{"type":"normal"}}]}`))
	case "improvement/store":
		if f.storeFail {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_ = json.Unmarshal(body, &f.stored)
		_, _ = w.Write([]byte("qid-1"))
	default:
		http.NotFound(w, r)
	}
}

func newTestFrontend(t *testing.T, fake *fakeSearchAPI, gate ratelimit.Gate, rep reporters.Reporter) *Frontend {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	var reps []reporters.Reporter
	if rep != nil {
		reps = append(reps, rep)
	}
	f := NewFrontendWith(Deps{
		API: []api.Option{
			api.WithBase(srv.URL + "/"),
			api.WithTransport(httpclient.NewRestyClient(api.DefaultTimeout)),
		},
		Gate:   gate,
		Fanout: reporters.NewFanout(reps, nil),
	})
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestSearchStoresQueryForImprovements(t *testing.T) {
	fake := &fakeSearchAPI{}
	f := newTestFrontend(t, fake, nil, nil)

	out, err := f.Search(context.Background(), "10.0.0.1", api.SearchQuery{Query: "cats"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Result.NumHits)
	assert.Equal(t, "qid-1", out.QueryID)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, "cats", fake.stored.Query)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, fake.stored.URLs)
}

func TestSearchSurvivesStoreFailure(t *testing.T) {
	fake := &fakeSearchAPI{storeFail: true}
	f := newTestFrontend(t, fake, nil, nil)

	out, err := f.Search(context.Background(), "", api.SearchQuery{Query: "cats"})
	require.NoError(t, err)
	assert.Empty(t, out.QueryID)
	assert.Equal(t, 2, out.Result.NumHits)
}

func TestSearchBangSkipsStore(t *testing.T) {
	fake := &fakeSearchAPI{bang: true}
	f := newTestFrontend(t, fake, nil, nil)

	out, err := f.Search(context.Background(), "", api.SearchQuery{Query: "!w cats"})
	require.NoError(t, err)
	assert.True(t, out.Result.IsBang())
	assert.Empty(t, out.QueryID)
}

func TestSearchGatedClientGetsCaptcha(t *testing.T) {
	gate, err := ratelimit.NewGate("bbolt", t.TempDir()+"/gate.db", ratelimit.Options{MaxRequests: 1})
	require.NoError(t, err)

	fake := &fakeSearchAPI{}
	f := newTestFrontend(t, fake, gate, nil)

	_, err = f.Search(context.Background(), "10.0.0.1", api.SearchQuery{Query: "cats"})
	require.NoError(t, err)

	_, err = f.Search(context.Background(), "10.0.0.1", api.SearchQuery{Query: "cats"})
	assert.ErrorIs(t, err, ErrCaptchaRequired)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, 1, fake.searches, "gated search must not reach the API")
}

func TestReportClickRespectsConsentAndQueryID(t *testing.T) {
	rep := &recordingReporter{}
	f := newTestFrontend(t, &fakeSearchAPI{}, nil, rep)

	assert.False(t, f.ReportClick(context.Background(), "", 0, true))
	assert.False(t, f.ReportClick(context.Background(), "qid-1", 0, false))
	assert.True(t, f.ReportClick(context.Background(), "qid-1", 3, true))

	f.fanout.Wait()
	got := rep.interactions()
	require.Len(t, got, 1)
	assert.Equal(t, "qid-1", got[0].QueryID)
	assert.Equal(t, 3, got[0].ClickIndex)
	assert.NotEmpty(t, got[0].EventID)
}

func TestNewFrontendWithoutReportersFile(t *testing.T) {
	cfg := &config.Config{
		APIBase:         "http://localhost:1/",
		RequestTimeout:  api.DefaultTimeout,
		GateType:        "none",
		ReportersFile:   t.TempDir() + "/missing.yaml",
		GateMaxRequests: 1,
	}
	f, err := NewFrontend(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, f.ReportClick(context.Background(), "qid", 0, true))
	assert.Len(t, f.API(), 3)
}
