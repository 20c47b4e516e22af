package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingSettlesOnlyOnce(t *testing.T) {
	p := newPending[int]()

	assert.True(t, p.resolve(1))
	assert.False(t, p.resolve(2))
	assert.False(t, p.reject(errors.New("late")))

	v, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.True(t, p.Settled())
}

func TestPendingCancelAfterSettleIsNoop(t *testing.T) {
	p := newPending[string]()
	p.resolve("done")

	p.Cancel()
	p.Cancel()

	v, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}

func TestPendingCancelBeforeSettleRejects(t *testing.T) {
	p := newPending[string]()
	p.Cancel()

	_, err := p.Result()
	assert.True(t, IsCanceled(err))
	assert.False(t, p.resolve("too late"))
}

func TestPendingCancelRunsHookOnce(t *testing.T) {
	calls := 0
	p := newPending[string]()
	p.onCancel = func() { calls++ }

	p.Cancel()
	p.Cancel()
	assert.Equal(t, 1, calls)
}

func TestPendingAwaitHonoursCallerContext(t *testing.T) {
	p := newPending[string]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, p.Settled(), "awaiting must not settle the operation")
}
