package reporters

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/samvad-hq/searchfront/pkg/api"
	"github.com/samvad-hq/searchfront/pkg/httpclient"
)

const beaconClickPath = "/improvement/click"

// beaconReporter posts clicks to the search API's improvement endpoint.
type beaconReporter struct {
	id      string
	base    string
	headers map[string]string
	client  *resty.Client
	log     Logger
}

func newBeaconReporter(_ context.Context, cfg ReporterConfig, log Logger) (Reporter, error) {
	bc := BeaconConfig{TimeoutSeconds: beaconDefaultTimeoutSeconds}
	if cfg.Beacon != nil {
		bc = *cfg.Beacon
	}

	return &beaconReporter{
		id:      cfg.ID,
		base:    bc.Base,
		headers: bc.Headers,
		client:  httpclient.NewRestyHTTPClient(time.Duration(bc.TimeoutSeconds) * time.Second),
		log:     ensureLogger(log),
	}, nil
}

func (b *beaconReporter) ID() string   { return b.id }
func (b *beaconReporter) Type() string { return TypeBeacon }

// Report sends POST {base}/improvement/click?qid=..&click=.. with no body.
func (b *beaconReporter) Report(ctx context.Context, in Interaction) error {
	base := b.base
	if base == "" {
		base = api.GlobalBase()
	}

	req := b.client.R().
		SetContext(ctx).
		SetQueryParam("qid", in.QueryID).
		SetQueryParam("click", strconv.Itoa(in.ClickIndex))
	if len(b.headers) > 0 {
		req.SetHeaders(b.headers)
	}

	resp, err := req.Post(base + beaconClickPath)
	if err != nil {
		return fmt.Errorf("beacon request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("beacon response status %d: %s", resp.StatusCode(), readBodySnippet(resp.Body()))
	}
	b.log.DebugObj("beacon reporter delivered click", "reporter_beacon_delivery", map[string]any{
		"reporter_id": b.id,
		"query_id":    in.QueryID,
	})
	return nil
}

func readBodySnippet(body []byte) string {
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
