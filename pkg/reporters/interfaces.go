package reporters

import "context"

// Reporter sends interaction reports to a downstream sink (beacon, SQS, etc).
type Reporter interface {
	ID() string
	Type() string
	Report(ctx context.Context, in Interaction) error
}
