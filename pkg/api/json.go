package api

import (
	"context"
	"encoding/json"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// RequestJSON issues the request through RequestPlain with a JSON content
// type and decodes the successful response text into T.
func RequestJSON[T any](ctx context.Context, method Method, path string, body any, opts ...Option) *Pending[T] {
	plain := requestPlain(ctx, method, path, body, resolveOptions(opts), jsonHeaders)

	p := newPending[T]()
	p.onCancel = func() {
		p.reject(&CancellationError{})
		plain.Cancel()
	}

	go func() {
		text, err := plain.Result()
		if err != nil {
			p.reject(err)
			return
		}
		var out T
		if err := json.Unmarshal([]byte(text), &out); err != nil {
			p.reject(&ParseError{Text: text, Err: err})
			return
		}
		p.resolve(out)
	}()

	return p
}
