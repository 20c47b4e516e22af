package main

import (
	"context"
	"errors"
	"sync"

	"github.com/samvad-hq/searchfront/internal/logger"
	"github.com/samvad-hq/searchfront/pkg/api"
)

// follow feeds stream messages to handle until it reports done, the server
// ends the stream, a connection error arrives, or ctx ends. The stream is
// closed on return.
func follow[T any](ctx context.Context, s *api.Stream[T], handle func(T) (bool, error)) error {
	defer s.Close()

	result := make(chan error, 1)
	var once sync.Once
	finish := func(err error) { once.Do(func() { result <- err }) }

	s.Subscribe(func(evt api.Event[T]) {
		if evt.Kind == api.KindError {
			var parseErr *api.ParseError
			switch {
			case errors.As(evt.Detail, &parseErr):
				logger.WarnObj("skipping undecodable stream event", "stream_event", parseErr.Text)
			case errors.Is(evt.Detail, api.ErrStreamEnded):
				finish(nil)
			default:
				finish(evt.Detail)
			}
			return
		}
		done, err := handle(evt.Data)
		if err != nil || done {
			finish(err)
		}
	})

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
