package api

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/searchfront/pkg/httpclient"
)

type stubResponse struct {
	status int
	body   string
}

func (r stubResponse) Body() []byte    { return []byte(r.body) }
func (r stubResponse) StatusCode() int { return r.status }

// stubTransport records requests and replays a canned outcome. When release
// is set, Do ignores ctx and waits for it, so tests can settle after a cancel.
type stubTransport struct {
	mu       sync.Mutex
	requests []*httpclient.Request

	status  int
	body    string
	err     error
	release chan struct{}

	stream     *stubEventStream
	streamErr  error
	streamGate chan struct{}
}

func (s *stubTransport) Do(ctx context.Context, req *httpclient.Request) (httpclient.Response, error) {
	s.record(req)
	if s.release != nil {
		<-s.release
	} else if s.err == nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	status := s.status
	if status == 0 {
		status = 200
	}
	return stubResponse{status: status, body: s.body}, nil
}

func (s *stubTransport) Stream(_ context.Context, req *httpclient.Request) (httpclient.EventStream, error) {
	s.record(req)
	if s.streamGate != nil {
		<-s.streamGate
	}
	if s.streamErr != nil {
		return nil, s.streamErr
	}
	return s.stream, nil
}

func (s *stubTransport) record(req *httpclient.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
}

func (s *stubTransport) lastRequest(t *testing.T) *httpclient.Request {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		t.Fatalf("transport was not called")
	}
	return s.requests[len(s.requests)-1]
}

// stubEventStream hands out whatever the test pushes on events or errs.
type stubEventStream struct {
	events    chan httpclient.ServerEvent
	errs      chan error
	closed    chan struct{}
	closeOnce sync.Once
}

func newStubEventStream() *stubEventStream {
	return &stubEventStream{
		events: make(chan httpclient.ServerEvent),
		errs:   make(chan error),
		closed: make(chan struct{}),
	}
}

func (s *stubEventStream) Next() (httpclient.ServerEvent, error) {
	select {
	case evt := <-s.events:
		return evt, nil
	case err := <-s.errs:
		return httpclient.ServerEvent{}, err
	case <-s.closed:
		return httpclient.ServerEvent{}, io.ErrClosedPipe
	}
}

func (s *stubEventStream) Close() error {
	s.closeOnce.Do(func() { close(s.closed) })
	return nil
}

func (s *stubEventStream) push(t *testing.T, data string) {
	t.Helper()
	select {
	case s.events <- httpclient.ServerEvent{Data: data}:
	case <-time.After(2 * time.Second):
		t.Fatalf("stream reader did not accept event %q", data)
	}
}

func (s *stubEventStream) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

func awaitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func recvEvent[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case evt := <-ch:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("no event delivered")
		return Event[T]{}
	}
}

func resetDefaults(t *testing.T) {
	t.Helper()
	defaultsMu.Lock()
	prevBase, prevTransport, prevLogger := globalBase, defaultTransport, defaultLogger
	defaultsMu.Unlock()
	t.Cleanup(func() {
		defaultsMu.Lock()
		globalBase, defaultTransport, defaultLogger = prevBase, prevTransport, prevLogger
		defaultsMu.Unlock()
	})
}
