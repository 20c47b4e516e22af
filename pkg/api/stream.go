package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"

	"github.com/samvad-hq/searchfront/pkg/httpclient"
)

// EventKind tags a stream event.
type EventKind string

const (
	KindMessage EventKind = "message"
	KindError   EventKind = "error"
)

// Event is delivered to a stream subscriber. Data is set for KindMessage,
// Detail for KindError.
type Event[T any] struct {
	Kind   EventKind
	Data   T
	Detail error
}

// Subscriber receives stream events.
type Subscriber[T any] func(Event[T])

// Decoder turns the data field of one server event into T.
type Decoder[T any] func(data string) (T, error)

// JSONDecoder decodes each event's data as a JSON document.
func JSONDecoder[T any]() Decoder[T] {
	return func(data string) (T, error) {
		var out T
		err := json.Unmarshal([]byte(data), &out)
		return out, err
	}
}

// TextDecoder passes each event's data through unchanged.
func TextDecoder(data string) (string, error) { return data, nil }

// Stream is a live server-push connection with a single subscriber slot.
type Stream[T any] struct {
	mu     sync.Mutex
	sub    Subscriber[T]
	conn   httpclient.EventStream
	closed bool

	stop context.CancelFunc
	log  Logger
	url  string
}

// OpenStream connects to the resolved base + path immediately and starts
// dispatching decoded events. Events that arrive while no subscriber is
// registered are dropped. A connection failure is reported once as a
// KindError event carrying a *StreamError; there is no reconnection, and the
// handle must still be closed.
func OpenStream[T any](ctx context.Context, path string, decode Decoder[T], opts ...Option) *Stream[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	o := resolveOptions(opts)
	streamCtx, stop := context.WithCancel(ctx)

	s := &Stream[T]{
		stop: stop,
		log:  o.logger(),
		url:  o.base() + path,
	}
	req := &httpclient.Request{
		Method:  string(MethodGet),
		URL:     s.url,
		Headers: o.headers(nil),
	}
	go s.run(streamCtx, o.transport(), req, decode)
	return s
}

// Subscribe makes fn the current subscriber, detaching the previous one.
// Passing nil detaches without replacement.
func (s *Stream[T]) Subscribe(fn Subscriber[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.sub = fn
}

// Close terminates the connection. No event delivery starts after Close
// returns. Safe to call more than once.
func (s *Stream[T]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.sub = nil
	conn := s.conn
	s.mu.Unlock()

	s.stop()
	if conn != nil {
		return conn.Close()
	}
	return nil
}

func (s *Stream[T]) run(ctx context.Context, transport httpclient.Client, req *httpclient.Request, decode Decoder[T]) {
	conn, err := transport.Stream(ctx, req)
	if err != nil {
		s.fail(err)
		return
	}
	if !s.attach(conn) {
		_ = conn.Close()
		return
	}

	for {
		evt, err := conn.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrStreamEnded
			}
			s.fail(err)
			return
		}

		data, err := decode(evt.Data)
		if err != nil {
			s.deliver(Event[T]{Kind: KindError, Detail: &ParseError{Text: evt.Data, Err: err}})
			continue
		}
		s.deliver(Event[T]{Kind: KindMessage, Data: data})
	}
}

func (s *Stream[T]) attach(conn httpclient.EventStream) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conn = conn
	return true
}

func (s *Stream[T]) fail(err error) {
	if s.isClosed() {
		return
	}
	s.log.WarnObj("api stream failed", "api_stream_error", map[string]any{
		"url":   s.url,
		"error": err.Error(),
	})
	s.deliver(Event[T]{Kind: KindError, Detail: &StreamError{Err: err}})
}

func (s *Stream[T]) deliver(evt Event[T]) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	sub := s.sub
	s.mu.Unlock()

	if sub != nil {
		sub(evt)
	}
}

func (s *Stream[T]) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
