package api

import (
	"sync"
	"time"

	"github.com/samvad-hq/searchfront/pkg/httpclient"
)

// DefaultTimeout bounds plain and JSON requests on the default transport.
const DefaultTimeout = 15 * time.Second

// process-wide defaults; written at start-up, read by every call.
var (
	defaultsMu       sync.RWMutex
	globalBase       string
	defaultTransport httpclient.Client
	defaultLogger    Logger
)

// SetGlobalBase sets the process-wide API origin prefixed to every path.
func SetGlobalBase(base string) {
	defaultsMu.Lock()
	globalBase = base
	defaultsMu.Unlock()
}

// GlobalBase returns the process-wide API origin, or "" if never set.
func GlobalBase() string {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return globalBase
}

// SetDefaultTransport replaces the transport used when no WithTransport option is given.
func SetDefaultTransport(c httpclient.Client) {
	defaultsMu.Lock()
	defaultTransport = c
	defaultsMu.Unlock()
}

// DefaultTransport returns the process-wide transport, building a resty
// client on first use.
func DefaultTransport() httpclient.Client {
	defaultsMu.RLock()
	c := defaultTransport
	defaultsMu.RUnlock()
	if c != nil {
		return c
	}

	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	if defaultTransport == nil {
		defaultTransport = httpclient.NewRestyClient(DefaultTimeout)
	}
	return defaultTransport
}

// SetLogger sets the process-wide logger used when no WithLogger option is given.
func SetLogger(log Logger) {
	defaultsMu.Lock()
	defaultLogger = log
	defaultsMu.Unlock()
}

// Option customizes a single call.
type Option func(*Options)

// Options is the resolved per-call configuration.
type Options struct {
	Base      string
	Transport httpclient.Client
	Headers   map[string]string
	Logger    Logger

	hasBase bool
}

// WithBase overrides the global base URL for this call. An empty string is
// a valid override.
func WithBase(base string) Option {
	return func(o *Options) {
		o.Base = base
		o.hasBase = true
	}
}

// WithTransport substitutes the transport for this call.
func WithTransport(c httpclient.Client) Option {
	return func(o *Options) {
		o.Transport = c
	}
}

// WithHeaders adds request headers; later options win on key collisions.
func WithHeaders(headers map[string]string) Option {
	return func(o *Options) {
		if len(headers) == 0 {
			return
		}
		if o.Headers == nil {
			o.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// WithLogger sets the logger for this call.
func WithLogger(log Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// ResolveBase returns the WithBase override if present, else the global base.
func ResolveBase(opts ...Option) string {
	o := resolveOptions(opts)
	return o.base()
}

func resolveOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o Options) base() string {
	if o.hasBase {
		return o.Base
	}
	return GlobalBase()
}

func (o Options) transport() httpclient.Client {
	if o.Transport != nil {
		return o.Transport
	}
	return DefaultTransport()
}

func (o Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return ensureLogger(defaultLogger)
}

// headers merges the caller headers with forced ones; forced keys win.
func (o Options) headers(forced map[string]string) map[string]string {
	if len(o.Headers) == 0 && len(forced) == 0 {
		return nil
	}
	out := make(map[string]string, len(o.Headers)+len(forced))
	for k, v := range o.Headers {
		out[k] = v
	}
	for k, v := range forced {
		out[k] = v
	}
	return out
}
