package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStreamEnded is the StreamError cause when the server closes a stream.
var ErrStreamEnded = errors.New("stream ended by server")

// NetworkError is a transport failure before any response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a completed exchange with a non-2xx status. Body is the
// full response text.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 512 {
		body = body[:512] + "..."
	}
	if body == "" {
		return fmt.Sprintf("http status %d", e.Status)
	}
	return fmt.Sprintf("http status %d: %s", e.Status, body)
}

// ParseError reports a body that could not be decoded. Text is the raw input.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("decode response: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// StreamError is delivered to stream subscribers on connection failure.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string { return fmt.Sprintf("stream error: %v", e.Err) }
func (e *StreamError) Unwrap() error { return e.Err }

// CancellationError rejects an operation cancelled before it completed.
type CancellationError struct{}

func (*CancellationError) Error() string { return "operation canceled" }

// IsCanceled reports whether err is a CancellationError.
func IsCanceled(err error) bool {
	var ce *CancellationError
	return errors.As(err, &ce)
}
