package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"newswatch/app/database"
	"newswatch/app/news"
	"newswatch/app/notify"
	"newswatch/app/source"
)

// Result summarizes one pipeline run. NewItems lists every newly-discovered
// item, including those beyond the delivery batch cap; Delivered counts the
// items actually recorded as sent.
type Result struct {
	NewItems  []news.Item
	Delivered int
	Skipped   bool
}

// ItemStatus annotates a normalized item with its delivery state, for the
// read-only article listing.
type ItemStatus struct {
	news.Item
	Sent bool
}

// Pipeline orchestrates one monitoring run: fetch, normalize, filter, dedup
// against the delivery store, fan out notifications, and commit successful
// deliveries. At most one run is active at a time; concurrent triggers are
// reported as skipped instead of racing the store.
type Pipeline struct {
	configCache *source.ConfigCache
	fetcher     SourceFetcher
	extractor   ExcerptExtractor
	normalizer  *news.Normalizer
	filterer    *news.Filterer
	store       database.DeliveryStore
	deliverer   Deliverer
	batchLimit  int
	sourcePause time.Duration
	runMu       sync.Mutex
}

func NewPipeline(configCache *source.ConfigCache, fetcher SourceFetcher,
	extractor ExcerptExtractor, filterer *news.Filterer,
	store database.DeliveryStore, deliverer Deliverer, batchLimit int) *Pipeline {
	return &Pipeline{
		configCache: configCache,
		fetcher:     fetcher,
		extractor:   extractor,
		normalizer:  news.NewNormalizer(),
		filterer:    filterer,
		store:       store,
		deliverer:   deliverer,
		batchLimit:  batchLimit,
		sourcePause: time.Second,
	}
}

// Run executes one full pipeline pass. Errors inside a run are contained and
// logged; the run always completes and returns a definite result.
func (p *Pipeline) Run(ctx context.Context) Result {
	if !p.runMu.TryLock() {
		slog.Debug("Pipeline run already active, skipping trigger")
		return Result{Skipped: true}
	}
	defer p.runMu.Unlock()

	started := time.Now()

	items := p.collect(ctx)

	var newItems []news.Item
	for _, item := range items {
		if !p.store.Has(item.Fingerprint) {
			newItems = append(newItems, item)
		}
	}

	delivered := 0
	batch := newItems
	if len(batch) > p.batchLimit {
		batch = batch[:p.batchLimit]
	}

	for i, item := range batch {
		outcomes := p.deliverer.Run(ctx, item)

		if notify.Delivered(outcomes) {
			p.store.Record(item.Fingerprint, item.Title, item.SourceName, item.URL, time.Now())
			delivered++
		} else {
			slog.Warn("No transport delivered item, leaving unrecorded for retry",
				"title", item.Title, "source", item.SourceName)
		}

		if i < len(batch)-1 {
			p.deliverer.Pause(ctx)
		}
	}

	slog.Info("Pipeline run completed",
		"duration", time.Since(started),
		"collected", len(items),
		"new", len(newItems),
		"delivered", delivered)

	return Result{NewItems: newItems, Delivered: delivered}
}

// RecentItems returns the current normalized, filtered view across all
// sources, annotated with delivery status. Read-only: nothing is committed to
// the store.
func (p *Pipeline) RecentItems(ctx context.Context, limit int) []ItemStatus {
	items := p.collect(ctx)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	statuses := make([]ItemStatus, 0, len(items))
	for _, item := range items {
		statuses = append(statuses, ItemStatus{
			Item: item,
			Sent: p.store.Has(item.Fingerprint),
		})
	}

	return statuses
}

// TestNotification pushes a synthetic notification through every configured
// transport and reports whether any succeeded.
func (p *Pipeline) TestNotification(ctx context.Context) bool {
	if !p.deliverer.HasEnabledTransport() {
		return false
	}

	notification := notify.Notification{
		Title:      "Newswatch Test - System Working!",
		Message:    "This is a test notification from your news monitor. If you received this, your notifications are working correctly!",
		SourceName: "Newswatch",
		URL:        "https://github.com",
		Timestamp:  time.Now(),
	}

	return notify.Delivered(p.deliverer.Send(ctx, notification))
}

// collect runs the fetch, normalize, filter, dedup and sort steps across all
// enabled sources. Per-source and per-item failures are logged and contained.
func (p *Pipeline) collect(ctx context.Context) []news.Item {
	configs := p.configCache.GetEnabledConfigs()

	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	var candidates []news.CandidateItem
	for i, name := range names {
		sourceConfig := configs[name]

		fetched, err := p.fetcher.Run(ctx, sourceConfig)
		if err != nil {
			slog.Warn("Source fetch failed, skipping", "source", name, "error", err)
		} else {
			slog.Debug("Source fetched", "source", name, "items", len(fetched))
			candidates = append(candidates, p.enrich(ctx, sourceConfig, fetched)...)
		}

		// Courtesy delay between upstream requests
		if i < len(names)-1 {
			p.pauseBetweenSources(ctx)
		}
	}

	now := time.Now()

	var items []news.Item
	seen := make(map[string]bool)
	for _, candidate := range candidates {
		item, err := p.normalizer.Run(candidate)
		if err != nil {
			if !errors.Is(err, news.ErrInvalidItem) {
				slog.Warn("Normalization failed", "source", candidate.SourceName, "error", err)
			}
			continue
		}

		if !p.filterer.Run(item) {
			continue
		}

		// Global dedup, first occurrence wins
		if seen[item.Fingerprint] {
			continue
		}
		seen[item.Fingerprint] = true

		items = append(items, item)
	}

	// Most recent first; undated items take the run's own timestamp so they
	// are not starved at the back of the batch.
	sort.SliceStable(items, func(i, j int) bool {
		return recencyKey(items[i], now).After(recencyKey(items[j], now))
	})

	return items
}

func (p *Pipeline) enrich(ctx context.Context, sourceConfig *source.Config, candidates []news.CandidateItem) []news.CandidateItem {
	if !sourceConfig.Settings.ExtractContent || p.extractor == nil {
		return candidates
	}

	for i, candidate := range candidates {
		if candidate.Summary != "" || candidate.URL == "" {
			continue
		}

		excerpt, err := p.extractor.Run(ctx, candidate.URL)
		if err != nil {
			slog.Debug("Excerpt extraction failed", "source", sourceConfig.Name,
				"url", candidate.URL, "error", err)
			continue
		}
		candidates[i].Summary = excerpt
	}

	return candidates
}

func (p *Pipeline) pauseBetweenSources(ctx context.Context) {
	if p.sourcePause <= 0 {
		return
	}

	select {
	case <-time.After(p.sourcePause):
	case <-ctx.Done():
	}
}

func recencyKey(item news.Item, now time.Time) time.Time {
	if item.PublishedAt != nil {
		return *item.PublishedAt
	}
	return now
}
