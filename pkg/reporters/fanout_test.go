package reporters

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type stubReporter struct {
	mu     sync.Mutex
	id     string
	typ    string
	err    error
	calls  int
	closed bool
}

func (s *stubReporter) ID() string   { return s.id }
func (s *stubReporter) Type() string { return s.typ }
func (s *stubReporter) Report(context.Context, Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubReporter) Close() error {
	s.closed = true
	return nil
}

func (s *stubReporter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestFanoutReportAggregatesErrors(t *testing.T) {
	fanout := NewFanout([]Reporter{
		&stubReporter{id: "ok", typ: TypeBeacon},
		&stubReporter{id: "bad", typ: TypeSQS, err: errors.New("failed")},
		nil,
	}, nil)

	if fanout.Size() != 2 {
		t.Fatalf("expected nil reporters to be skipped, size=%d", fanout.Size())
	}
	count, err := fanout.Report(context.Background(), NewInteraction("q", 1))
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
}

func TestFanoutSendIgnoresCallerCancellation(t *testing.T) {
	rep := &stubReporter{id: "ok", typ: TypeBeacon}
	fanout := NewFanout([]Reporter{rep}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	fanout.Send(ctx, NewInteraction("q", 1))
	cancel()
	fanout.Wait()

	if rep.callCount() != 1 {
		t.Fatalf("expected background report to run once, got %d", rep.callCount())
	}
}

func TestFanoutCloseReleasesReporters(t *testing.T) {
	rep := &stubReporter{id: "ok", typ: TypePubSub}
	fanout := NewFanout([]Reporter{rep}, nil)

	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !rep.closed {
		t.Fatalf("expected reporter to be closed")
	}
}

func TestNilFanoutIsSafe(t *testing.T) {
	var fanout *Fanout
	fanout.Send(context.Background(), Interaction{})
	if n, err := fanout.Report(context.Background(), Interaction{}); n != 0 || err != nil {
		t.Fatalf("nil fanout should be a no-op, got %d %v", n, err)
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reps, err := BuildAll(context.Background(), DefaultRegistry(), []ReporterConfig{
		{ID: "beacon", Type: TypeBeacon},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(reps) != 1 || reps[0].Type() != TypeBeacon {
		t.Fatalf("expected 1 beacon reporter, got %#v", reps)
	}
}

func TestBuildAllUnknownType(t *testing.T) {
	_, err := BuildAll(context.Background(), DefaultRegistry(), []ReporterConfig{
		{ID: "k", Type: "kafka"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for unregistered type")
	}
}
