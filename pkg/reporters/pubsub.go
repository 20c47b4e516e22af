package reporters

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// pubsubReporter implements the Reporter interface for Google Cloud Pub/Sub.
type pubsubReporter struct {
	id     string
	client *pubsub.Client
	topic  *pubsub.Topic
	log    Logger
}

func newPubSubReporter(ctx context.Context, cfg ReporterConfig, log Logger) (Reporter, error) {
	if cfg.PubSub == nil {
		return nil, fmt.Errorf("reporter %q missing pubsub configuration", cfg.ID)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var opts []option.ClientOption
	if cfg.PubSub.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.PubSub.CredentialsFile))
	}
	if cfg.PubSub.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.PubSub.Endpoint))
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &pubsubReporter{
		id:     cfg.ID,
		client: client,
		topic:  client.Topic(cfg.PubSub.Topic),
		log:    ensureLogger(log),
	}, nil
}

func (p *pubsubReporter) ID() string   { return p.id }
func (p *pubsubReporter) Type() string { return TypePubSub }

// Report publishes the interaction and waits for the server ack.
func (p *pubsubReporter) Report(ctx context.Context, in Interaction) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	res := p.topic.Publish(ctx, &pubsub.Message{
		Data:       payload,
		Attributes: in.attributes(),
	})
	msgID, err := res.Get(ctx)
	if err != nil {
		p.log.ErrorObj("pubsub reporter publish failed", "reporter_pubsub_error", map[string]any{
			"reporter_id": p.id,
			"error":       err.Error(),
		})
		return fmt.Errorf("publish to pubsub: %w", err)
	}
	p.log.DebugObj("pubsub reporter delivered interaction", "reporter_pubsub_delivery", map[string]any{
		"reporter_id": p.id,
		"message_id":  msgID,
	})
	return nil
}

// Close flushes pending messages and releases the client.
func (p *pubsubReporter) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
