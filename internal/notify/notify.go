package notify

import "context"

// Notifier delivers a finished report summary to an external channel. It is
// invoked only after the report has been finalized and written; a delivery
// failure never invalidates the report itself.
type Notifier interface {
	Deliver(ctx context.Context, message string) error
	Name() string
}

// Noop is the notifier used when no channel is configured.
type Noop struct{}

func (Noop) Name() string { return "noop" }

func (Noop) Deliver(ctx context.Context, message string) error { return nil }

// New returns a Slack notifier for the webhook URL, or Noop when the URL is
// empty.
func New(webhookURL string) Notifier {
	if webhookURL == "" {
		return Noop{}
	}
	return NewSlack(webhookURL)
}
