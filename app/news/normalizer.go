package news

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidItem marks a candidate missing a title or URL after trimming.
// Callers drop the item and continue.
var ErrInvalidItem = errors.New("item is missing required fields")

const maxSummaryLength = 200

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run converts a candidate into a normalized item. Pure: no I/O, no shared
// state.
func (n *Normalizer) Run(candidate CandidateItem) (Item, error) {
	title := strings.TrimSpace(candidate.Title)
	url := strings.TrimSpace(candidate.URL)

	if title == "" || url == "" {
		return Item{}, ErrInvalidItem
	}

	return Item{
		Fingerprint: n.generateFingerprint(title, url),
		Title:       title,
		URL:         url,
		Summary:     truncateSummary(strings.TrimSpace(candidate.Summary)),
		SourceName:  candidate.SourceName,
		PublishedAt: candidate.PublishedAt,
	}, nil
}

func (n *Normalizer) generateFingerprint(title, url string) string {
	content := fmt.Sprintf("%s|%s", title, url)

	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

func truncateSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= maxSummaryLength {
		return summary
	}
	return string(runes[:maxSummaryLength]) + "..."
}
