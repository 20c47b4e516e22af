package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/samvad-hq/searchfront/internal/config"
	"github.com/samvad-hq/searchfront/internal/logger"
	"github.com/samvad-hq/searchfront/internal/ratelimit"
	"github.com/samvad-hq/searchfront/pkg/api"
	"github.com/samvad-hq/searchfront/pkg/httpclient"
	"github.com/samvad-hq/searchfront/pkg/reporters"
)

// ErrCaptchaRequired is returned by Search when the client must solve a
// captcha before more searches are served.
var ErrCaptchaRequired = errors.New("captcha required")

// Frontend wires the API client to the captcha gate and the interaction
// reporters. It holds no per-user state.
type Frontend struct {
	apiOpts []api.Option
	gate    ratelimit.Gate
	fanout  *reporters.Fanout
	log     logger.Logger
}

// Deps are the collaborators of a Frontend.
type Deps struct {
	API    []api.Option
	Gate   ratelimit.Gate
	Fanout *reporters.Fanout
	Log    logger.Logger
}

// SearchOutcome is a search result plus the query id later clicks are
// attributed to. QueryID is empty when the results could not be stored.
type SearchOutcome struct {
	Result  api.SearchResult
	QueryID string
}

// NewFrontend builds a frontend runtime from config.
func NewFrontend(ctx context.Context, cfg *config.Config, log logger.Logger) (*Frontend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	api.SetGlobalBase(cfg.APIBase)
	api.SetLogger(log)
	apiOpts := []api.Option{
		api.WithTransport(httpclient.NewRestyClient(cfg.RequestTimeout)),
		api.WithHeaders(map[string]string{"User-Agent": cfg.UserAgent}),
		api.WithLogger(log),
	}
	log.InfoObj("api client configured", "api_config", map[string]any{
		"base":            cfg.APIBase,
		"timeout_seconds": int(cfg.RequestTimeout.Seconds()),
	})

	gate, err := ratelimit.NewGate(cfg.GateType, cfg.GatePath, ratelimit.Options{
		Window:      cfg.GateWindow,
		MaxRequests: cfg.GateMaxRequests,
	})
	if err != nil {
		return nil, fmt.Errorf("init captcha gate: %w", err)
	}
	log.InfoObj("captcha gate initialized", "gate_config", map[string]any{
		"type":           cfg.GateType,
		"path":           cfg.GatePath,
		"window_seconds": int(cfg.GateWindow.Seconds()),
		"max_requests":   cfg.GateMaxRequests,
	})

	fanout, err := buildFanout(ctx, cfg.ReportersFile, log)
	if err != nil {
		gate.Close()
		return nil, err
	}

	return NewFrontendWith(Deps{API: apiOpts, Gate: gate, Fanout: fanout, Log: log}), nil
}

// NewFrontendWith assembles a Frontend from ready-made collaborators.
func NewFrontendWith(d Deps) *Frontend {
	f := &Frontend{
		apiOpts: d.API,
		gate:    d.Gate,
		fanout:  d.Fanout,
		log:     d.Log,
	}
	if f.log == nil {
		f.log = logger.NopLogger{}
	}
	if f.fanout == nil {
		f.fanout = reporters.NewFanout(nil, f.log)
	}
	return f
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*reporters.Fanout, error) {
	reg, err := reporters.LoadRegistry(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.WarnObj("reporters file not found; click reporting disabled", "reporters_file", path)
		return reporters.NewFanout(nil, log), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load reporters registry: %w", err)
	}

	enabled := reg.Enabled()
	clients, err := reporters.BuildAll(ctx, reporters.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build reporters: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("reporters registry loaded", "reporters_meta", map[string]any{
		"count":     len(summaries),
		"reporters": summaries,
	})
	return reporters.NewFanout(clients, log), nil
}

// API returns the per-call options every request from this frontend uses.
func (f *Frontend) API() []api.Option {
	out := make([]api.Option, len(f.apiOpts))
	copy(out, f.apiOpts)
	return out
}

// Search runs q for clientAddr. Gated clients get ErrCaptchaRequired and no
// request is made. A website result is stored so clicks can be reported.
func (f *Frontend) Search(ctx context.Context, clientAddr string, q api.SearchQuery) (SearchOutcome, error) {
	if f.gate != nil {
		gated, err := f.gate.ShouldGate(clientAddr)
		if err != nil {
			f.log.WarnObj("captcha gate check failed", "gate_error", map[string]any{
				"client": clientAddr,
				"error":  err.Error(),
			})
		}
		if gated {
			return SearchOutcome{}, ErrCaptchaRequired
		}
	}

	res, err := api.Search(ctx, q, f.apiOpts...).Await(ctx)
	if err != nil {
		return SearchOutcome{}, fmt.Errorf("search %q: %w", q.Query, err)
	}

	out := SearchOutcome{Result: res}
	if res.IsBang() {
		return out, nil
	}

	urls := make([]string, 0, len(res.Webpages))
	for _, wp := range res.Webpages {
		urls = append(urls, wp.URL)
	}
	qid, err := api.ImprovementStore(ctx, api.ImprovementStoreParams{Query: q.Query, URLs: urls}, f.apiOpts...).Await(ctx)
	if err != nil {
		f.log.WarnObj("store query for improvements failed", "improvement_error", map[string]any{
			"query": q.Query,
			"error": err.Error(),
		})
		return out, nil
	}
	out.QueryID = qid
	return out, nil
}

// ReportClick reports a click on the result at index. Nothing is sent
// without a query id or when the user has not allowed statistics. It
// reports whether a report was dispatched.
func (f *Frontend) ReportClick(ctx context.Context, queryID string, index int, allowStats bool) bool {
	if queryID == "" || !allowStats || f.fanout.Size() == 0 {
		return false
	}
	f.fanout.Send(ctx, reporters.NewInteraction(queryID, index))
	return true
}

// Close waits for pending reports and releases the gate.
func (f *Frontend) Close() error {
	var errs []error
	if err := f.fanout.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close reporters: %w", err))
	}
	if f.gate != nil {
		if err := f.gate.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close gate: %w", err))
		}
	}
	return errors.Join(errs...)
}
