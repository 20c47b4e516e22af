package ratelimit

import (
	"fmt"
	"strings"
	"time"
)

// Package ratelimit decides when a client must solve a captcha before searching.

// Gate reports whether a request from clientAddr must be challenged.
type Gate interface {
	Close() error
	ShouldGate(clientAddr string) (bool, error)
}

// Options controls the counting window of concrete gate implementations.
type Options struct {
	Window          time.Duration
	MaxRequests     int
	CleanupInterval time.Duration
}

const (
	defaultWindow          = time.Minute
	defaultMaxRequests     = 30
	defaultCleanupInterval = 10 * time.Minute
)

// NewGate creates the configured gate backend.
func NewGate(typ, path string, opts Options) (Gate, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopGate{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt gate requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported gate type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.Window <= 0 {
		opts.Window = defaultWindow
	}
	if opts.MaxRequests <= 0 {
		opts.MaxRequests = defaultMaxRequests
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopGate struct{}

func (noopGate) Close() error                    { return nil }
func (noopGate) ShouldGate(string) (bool, error) { return false, nil }
