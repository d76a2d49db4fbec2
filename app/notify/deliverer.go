package notify

import (
	"context"
	"log/slog"
	"time"

	"newswatch/app/news"
)

// Deliverer fans a notification out across the configured transports in
// order. Transport attempts are independent: one failure never aborts the
// remaining attempts.
type Deliverer struct {
	transports []Transport
	pause      time.Duration
}

func NewDeliverer(transports []Transport, pause time.Duration) *Deliverer {
	return &Deliverer{
		transports: transports,
		pause:      pause,
	}
}

// Run attempts delivery of one item across every transport and reports a
// per-transport outcome.
func (d *Deliverer) Run(ctx context.Context, item news.Item) []Outcome {
	return d.Send(ctx, NewItemNotification(item))
}

// Send dispatches an already-shaped notification across every transport.
func (d *Deliverer) Send(ctx context.Context, notification Notification) []Outcome {
	outcomes := make([]Outcome, 0, len(d.transports))

	for _, transport := range d.transports {
		if !transport.Enabled() {
			slog.Debug("Transport not configured, skipping", "transport", transport.Name())
			outcomes = append(outcomes, Outcome{Transport: transport.Name(), Status: StatusSkipped})
			continue
		}

		if err := transport.Send(ctx, notification); err != nil {
			slog.Warn("Transport delivery failed", "transport", transport.Name(),
				"title", notification.Title, "error", err)
			outcomes = append(outcomes, Outcome{Transport: transport.Name(), Status: StatusFailed, Err: err})
			continue
		}

		slog.Debug("Transport delivery succeeded", "transport", transport.Name())
		outcomes = append(outcomes, Outcome{Transport: transport.Name(), Status: StatusSuccess})
	}

	return outcomes
}

// Pause waits the configured inter-item delay, mitigating upstream rate
// limits. Cooperative: returns early when the context is cancelled.
func (d *Deliverer) Pause(ctx context.Context) {
	if d.pause <= 0 {
		return
	}

	select {
	case <-time.After(d.pause):
	case <-ctx.Done():
	}
}

// HasEnabledTransport reports whether any transport is configured.
func (d *Deliverer) HasEnabledTransport() bool {
	for _, transport := range d.transports {
		if transport.Enabled() {
			return true
		}
	}
	return false
}
