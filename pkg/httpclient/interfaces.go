package httpclient

import (
	"context"
	"fmt"
)

// Request is a single outbound HTTP call. A nil Body means no payload.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// ServerEvent is one dispatched server-sent event.
type ServerEvent struct {
	Type string
	ID   string
	Data string
}

// EventStream is an open server-push connection.
type EventStream interface {
	// Next blocks until the next event is dispatched by the server.
	// It returns io.EOF when the server ends the stream.
	Next() (ServerEvent, error)
	Close() error
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req *Request) (Response, error)
	Stream(ctx context.Context, req *Request) (EventStream, error)
}

// StatusError is returned by Stream when the server refuses the connection.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stream rejected with status %d: %s", e.Code, e.Body)
}
