package notify

import (
	"context"
)

// Transport is an external delivery channel for outbound notifications.
// Transports are stateless between invocations and independently configured;
// an unconfigured transport reports Enabled() == false and is skipped rather
// than treated as failed.
type Transport interface {
	Name() string
	Enabled() bool
	Send(ctx context.Context, notification Notification) error
}
