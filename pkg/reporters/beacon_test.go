package reporters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBeaconReporterPostsClick(t *testing.T) {
	var gotPath, gotQID, gotClick, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotQID = r.URL.Query().Get("qid")
		gotClick = r.URL.Query().Get("click")
		gotHeader = r.Header.Get("X-Test")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rep, err := newBeaconReporter(context.Background(), ReporterConfig{
		ID:   "beacon",
		Type: TypeBeacon,
		Beacon: &BeaconConfig{
			Base:           srv.URL,
			Headers:        map[string]string{"X-Test": "1"},
			TimeoutSeconds: 2,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newBeaconReporter: %v", err)
	}

	if err := rep.Report(context.Background(), NewInteraction("qid-7", 5)); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if gotPath != "/improvement/click" || gotQID != "qid-7" || gotClick != "5" {
		t.Fatalf("unexpected request path=%s qid=%s click=%s", gotPath, gotQID, gotClick)
	}
	if gotHeader != "1" {
		t.Fatalf("missing header, got %q", gotHeader)
	}
}

func TestBeaconReporterErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	rep, err := newBeaconReporter(context.Background(), ReporterConfig{
		ID:     "beacon",
		Type:   TypeBeacon,
		Beacon: &BeaconConfig{Base: srv.URL, TimeoutSeconds: 1},
	}, nil)
	if err != nil {
		t.Fatalf("newBeaconReporter: %v", err)
	}

	if err := rep.Report(context.Background(), NewInteraction("q", 0)); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}
