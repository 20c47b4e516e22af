package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/searchfront/pkg/httpclient"
)

// RequestPlain issues one request to the resolved base + path and resolves
// with the raw response text. path must already carry its query string.
//
// A nil body sends no payload. Strings, byte slices and json.RawMessage are
// sent verbatim; any other value is sent as its JSON encoding.
func RequestPlain(ctx context.Context, method Method, path string, body any, opts ...Option) *Pending[string] {
	return requestPlain(ctx, method, path, body, resolveOptions(opts), nil)
}

func requestPlain(ctx context.Context, method Method, path string, body any, o Options, forced map[string]string) *Pending[string] {
	if ctx == nil {
		ctx = context.Background()
	}
	if !method.Valid() {
		return rejected[string](fmt.Errorf("unsupported method %q", method))
	}
	payload, err := encodeBody(body)
	if err != nil {
		return rejected[string](fmt.Errorf("encode request body: %w", err))
	}

	// The abort handle exists before the goroutine starts, so a Cancel issued
	// right after this call returns still wins.
	opCtx, stop := context.WithCancel(ctx)
	p := newPending[string]()
	p.onCancel = func() {
		p.reject(&CancellationError{})
		stop()
	}

	req := &httpclient.Request{
		Method:  strings.ToUpper(string(method)),
		URL:     o.base() + path,
		Headers: o.headers(forced),
		Body:    payload,
	}
	transport := o.transport()
	log := o.logger()

	go func() {
		defer stop()

		start := time.Now()
		resp, err := transport.Do(opCtx, req)
		if err != nil {
			if errors.Is(opCtx.Err(), context.Canceled) {
				p.reject(&CancellationError{})
				return
			}
			log.WarnObj("api request failed", "api_request_error", map[string]any{
				"method": req.Method,
				"url":    req.URL,
				"error":  err.Error(),
			})
			p.reject(&NetworkError{Err: err})
			return
		}

		status := resp.StatusCode()
		text := string(resp.Body())
		log.DebugObj("api request completed", "api_request", map[string]any{
			"method":     req.Method,
			"url":        req.URL,
			"status":     status,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})

		if status < 200 || status > 299 {
			p.reject(&HTTPError{Status: status, Body: text})
			return
		}
		p.resolve(text)
	}()

	return p
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(b), nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		return json.Marshal(body)
	}
}
