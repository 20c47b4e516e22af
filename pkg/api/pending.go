package api

import (
	"context"
	"sync"
)

// Pending is a cancellable asynchronous result. It settles exactly once,
// either with a value or with an error.
type Pending[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error

	cancelOnce sync.Once
	onCancel   func()
}

func newPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

func rejected[T any](err error) *Pending[T] {
	p := newPending[T]()
	p.reject(err)
	return p
}

// settle records the outcome; only the first call has any effect.
func (p *Pending[T]) settle(v T, err error) bool {
	won := false
	p.once.Do(func() {
		p.value, p.err = v, err
		close(p.done)
		won = true
	})
	return won
}

func (p *Pending[T]) resolve(v T) bool {
	return p.settle(v, nil)
}

func (p *Pending[T]) reject(err error) bool {
	var zero T
	return p.settle(zero, err)
}

// Cancel requests cancellation. If the operation has not settled it is
// rejected with a CancellationError and the transport call is aborted.
// Calls after settlement, and repeated calls, are no-ops.
func (p *Pending[T]) Cancel() {
	p.cancelOnce.Do(func() {
		if p.onCancel != nil {
			p.onCancel()
			return
		}
		p.reject(&CancellationError{})
	})
}

// Done is closed once the operation has settled.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Settled reports whether the operation has completed, failed or been cancelled.
func (p *Pending[T]) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Await blocks until the operation settles. If ctx ends first, Await returns
// ctx.Err() and the operation keeps running; use Cancel to abort it.
func (p *Pending[T]) Await(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result blocks until the operation settles.
func (p *Pending[T]) Result() (T, error) {
	<-p.done
	return p.value, p.err
}
