package reporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

const sendTimeout = 10 * time.Second

// Fanout dispatches interaction reports to all configured reporters.
type Fanout struct {
	reporters []Reporter
	log       Logger
	inflight  sync.WaitGroup
}

// NewFanout builds a dispatcher that fans out reports across reporters.
func NewFanout(reps []Reporter, log Logger) *Fanout {
	cp := make([]Reporter, 0, len(reps))
	for _, r := range reps {
		if r == nil {
			continue
		}
		cp = append(cp, r)
	}
	return &Fanout{reporters: cp, log: ensureLogger(log)}
}

// Report forwards the interaction to every registered reporter.
// It returns the number of reporters that successfully handled it.
func (f *Fanout) Report(ctx context.Context, in Interaction) (int, error) {
	if f == nil || len(f.reporters) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, r := range f.reporters {
		if err := r.Report(ctx, in); err != nil {
			errs = append(errs, fmt.Errorf("%s reporter[%s]: %w", r.Type(), r.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Send reports in the background. Failures are logged, never returned, and
// the caller's cancellation does not abort an in-flight report.
func (f *Fanout) Send(ctx context.Context, in Interaction) {
	if f == nil || len(f.reporters) == 0 {
		return
	}

	f.inflight.Add(1)
	go func() {
		defer f.inflight.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()

		n, err := f.Report(sendCtx, in)
		if err != nil {
			f.log.WarnObj("interaction report failed", "reporter_error", map[string]any{
				"event_id":  in.EventID,
				"delivered": n,
				"error":     err.Error(),
			})
			return
		}
		f.log.DebugObj("interaction reported", "reporter_delivery", map[string]any{
			"event_id":  in.EventID,
			"delivered": n,
		})
	}()
}

// Wait blocks until every report started with Send has finished.
func (f *Fanout) Wait() {
	if f == nil {
		return
	}
	f.inflight.Wait()
}

// Close waits for in-flight reports and releases reporters holding clients.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	f.Wait()
	return closeAll(f.reporters)
}

// Size returns the number of active reporters.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.reporters)
}

func closeAll(reps []Reporter) error {
	var errs []error
	for _, r := range reps {
		if c, ok := r.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close reporter[%s]: %w", r.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
