package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBase(t *testing.T) {
	resetDefaults(t)

	assert.Equal(t, "", ResolveBase())

	SetGlobalBase("https://global.example/")
	assert.Equal(t, "https://global.example/", GlobalBase())
	assert.Equal(t, "https://global.example/", ResolveBase())
	assert.Equal(t, "https://x/", ResolveBase(WithBase("https://x/")))
	assert.Equal(t, "", ResolveBase(WithBase("")), "empty override still wins")
}

func TestGlobalBaseAppliesToCalls(t *testing.T) {
	resetDefaults(t)
	SetGlobalBase("https://global.example/api/")

	stub := &stubTransport{body: "text"}
	_, err := RequestPlain(context.Background(), MethodGet, "explore/export", nil, WithTransport(stub)).Await(awaitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "https://global.example/api/explore/export", stub.lastRequest(t).URL)
}

func TestDefaultTransportIsUsedWithoutOverride(t *testing.T) {
	resetDefaults(t)
	stub := &stubTransport{body: "ok"}
	SetDefaultTransport(stub)

	assert.Same(t, stub, DefaultTransport())

	_, err := RequestPlain(context.Background(), MethodGet, "x", nil).Await(awaitCtx(t))
	require.NoError(t, err)
	assert.Len(t, stub.requests, 1)
}

func TestDefaultTransportIsBuiltLazily(t *testing.T) {
	resetDefaults(t)
	SetDefaultTransport(nil)

	first := DefaultTransport()
	require.NotNil(t, first)
	assert.Same(t, first, DefaultTransport())
}

func TestWithHeadersMerges(t *testing.T) {
	o := resolveOptions([]Option{
		WithHeaders(map[string]string{"A": "1", "B": "1"}),
		WithHeaders(map[string]string{"B": "2"}),
		nil,
	})
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, o.headers(nil))
	assert.Equal(t, map[string]string{"A": "1", "B": "forced"}, o.headers(map[string]string{"B": "forced"}))
	assert.Nil(t, resolveOptions(nil).headers(nil))
}

type recordingLogger struct {
	warns []string
}

func (l *recordingLogger) InfoObj(string, string, any)  {}
func (l *recordingLogger) DebugObj(string, string, any) {}
func (l *recordingLogger) WarnObj(msg, _ string, _ any) { l.warns = append(l.warns, msg) }
func (l *recordingLogger) ErrorObj(string, string, any) {}

func TestLoggerReceivesTransportFailures(t *testing.T) {
	resetDefaults(t)
	log := &recordingLogger{}
	SetLogger(log)

	_, err := RequestPlain(context.Background(), MethodGet, "x", nil,
		WithTransport(&stubTransport{err: assert.AnError})).Await(awaitCtx(t))
	require.Error(t, err)
	assert.Equal(t, []string{"api request failed"}, log.warns)
}
