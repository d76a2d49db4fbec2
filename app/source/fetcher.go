package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"newswatch/app/news"
)

// Fetcher pulls candidate items from a single RSS/Atom source. Each source
// has an independent failure mode; callers treat a failed fetch as an empty
// contribution.
type Fetcher struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	userAgent    string
}

func NewFetcher(httpClient *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		userAgent:    userAgent,
	}
}

func (f *Fetcher) Run(ctx context.Context, sourceConfig *Config) ([]news.CandidateItem, error) {
	data, err := f.fetch(ctx, sourceConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}

	candidates, err := f.Parse(data, sourceConfig.Name, sourceConfig.Settings.MaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	return candidates, nil
}

// Parse converts raw feed bytes into candidate items, capped at maxItems most
// recent entries.
func (f *Fetcher) Parse(data []byte, sourceName string, maxItems int) ([]news.CandidateItem, error) {
	feed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := feed.Items
	if maxItems > 0 && len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	candidates := make([]news.CandidateItem, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}

		candidate := news.CandidateItem{
			Title:      entry.Title,
			URL:        entry.Link,
			Summary:    entry.Description,
			SourceName: sourceName,
		}

		if entry.PublishedParsed != nil {
			candidate.PublishedAt = entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			candidate.PublishedAt = entry.UpdatedParsed
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func (f *Fetcher) fetch(ctx context.Context, sourceConfig *Config) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(sourceConfig.Settings.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", sourceConfig.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
