package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/samvad-hq/searchfront/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("nonsense"))
}

func TestZapLoggerWritesObjectField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}

	l.WarnObj("request failed", "api_request_error", map[string]any{"status": 502})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "request failed", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Contains(t, entries[0].ContextMap(), "api_request_error")
}

func TestPackageHelpersAreSafeBeforeInit(t *testing.T) {
	prev := S
	S = nil
	t.Cleanup(func() { S = prev })

	assert.NotPanics(t, func() {
		Default().InfoObj("x", "k", 1)
		ErrorObj("x", "k", 1)
	})
	assert.NoError(t, Close())
}

func TestInitSetsPackageLogger(t *testing.T) {
	prev := S
	t.Cleanup(func() { S = prev })

	sugar, err := Init(&config.Config{AppName: "searchfront", Env: "test", LogLevel: "debug"})
	require.NoError(t, err)
	assert.Same(t, sugar, S)
}
