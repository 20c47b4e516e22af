package httpclient

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const maxStreamErrorBytes = 64 << 10

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
	// stream has no overall timeout; long-lived connections end on Close or ctx.
	stream *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified request timeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{
		client: newRestyBaseClient(timeout),
		stream: newRestyBaseClient(0),
	}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Do performs a single HTTP request with the given verb, headers and body.
func (r *RestyClient) Do(ctx context.Context, req *Request) (Response, error) {
	rr := r.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if req.Body != nil {
		rr.SetBody(req.Body)
	}
	resp, err := rr.Execute(strings.ToUpper(req.Method), req.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// Stream opens a server-sent events connection. The returned stream owns the
// response body until Close is called.
func (r *RestyClient) Stream(ctx context.Context, req *Request) (EventStream, error) {
	rr := r.stream.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "text/event-stream").
		SetHeader("Cache-Control", "no-cache")
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if req.Body != nil {
		rr.SetBody(req.Body)
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = resty.MethodGet
	}
	resp, err := rr.Execute(method, req.URL)
	if err != nil {
		return nil, err
	}

	body := resp.RawBody()
	if body == nil {
		return nil, fmt.Errorf("stream %s: empty response body", req.URL)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		defer body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(body, maxStreamErrorBytes))
		return nil, &StatusError{Code: code, Body: string(snippet)}
	}
	return newSSEReader(body), nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
