package pipeline

import (
	"context"

	"newswatch/app/news"
	"newswatch/app/notify"
	"newswatch/app/source"
)

// SourceFetcher pulls candidate items for one configured source.
type SourceFetcher interface {
	Run(ctx context.Context, sourceConfig *source.Config) ([]news.CandidateItem, error)
}

// ExcerptExtractor produces a plain-text excerpt for an article page.
type ExcerptExtractor interface {
	Run(ctx context.Context, pageURL string) (string, error)
}

// Deliverer fans one item out across the configured transports.
type Deliverer interface {
	Run(ctx context.Context, item news.Item) []notify.Outcome
	Send(ctx context.Context, notification notify.Notification) []notify.Outcome
	Pause(ctx context.Context)
	HasEnabledTransport() bool
}
