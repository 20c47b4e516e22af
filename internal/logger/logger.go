package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samvad-hq/searchfront/internal/config"
)

// Logger is the object-logging surface shared by the client packages.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

// Package-level logger to be used across packages after Init.
var S *zap.SugaredLogger

// Init initializes a zap SugaredLogger using settings from config.
func Init(cfg *config.Config) (*zap.SugaredLogger, error) {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(zapcore.Lock(os.Stderr)),
		ParseLevel(cfg.LogLevel),
	)

	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("app", cfg.AppName), zap.String("env", cfg.Env))
	S = l.Sugar()
	return S, nil
}

// ParseLevel maps a config level name to a zap level, defaulting to info.
func ParseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// Close flushes any buffered loggers.
func Close() error {
	if S == nil {
		return nil
	}
	return S.Sync()
}

// Default returns a Logger backed by the package-level logger.
func Default() Logger { return pkgLogger{} }

type pkgLogger struct{}

func (pkgLogger) InfoObj(msg, key string, obj interface{})  { InfoObj(msg, key, obj) }
func (pkgLogger) DebugObj(msg, key string, obj interface{}) { DebugObj(msg, key, obj) }
func (pkgLogger) WarnObj(msg, key string, obj interface{})  { WarnObj(msg, key, obj) }
func (pkgLogger) ErrorObj(msg, key string, obj interface{}) { ErrorObj(msg, key, obj) }

// ZapLogger adapts a specific zap logger to Logger.
type ZapLogger struct {
	L *zap.Logger
}

func (z ZapLogger) InfoObj(msg, key string, obj interface{})  { z.L.Info(msg, zap.Any(key, obj)) }
func (z ZapLogger) DebugObj(msg, key string, obj interface{}) { z.L.Debug(msg, zap.Any(key, obj)) }
func (z ZapLogger) WarnObj(msg, key string, obj interface{})  { z.L.Warn(msg, zap.Any(key, obj)) }
func (z ZapLogger) ErrorObj(msg, key string, obj interface{}) { z.L.Error(msg, zap.Any(key, obj)) }

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}

// Minimal object logging helpers -------------------------------------------------
// These log the given object as a structured field named `key`.
func InfoObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Info(msg, zap.Any(key, obj))
}

func DebugObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Debug(msg, zap.Any(key, obj))
}

func WarnObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Warn(msg, zap.Any(key, obj))
}

func ErrorObj(msg, key string, obj interface{}) {
	if S == nil {
		return
	}
	S.Desugar().Error(msg, zap.Any(key, obj))
}
