package news

import (
	"time"
)

// CandidateItem is a raw entry as yielded by a source, before normalization.
// It carries no identity beyond its title and URL.
type CandidateItem struct {
	Title       string
	URL         string
	Summary     string
	SourceName  string
	PublishedAt *time.Time
}

// Item is a normalized candidate with a stable fingerprint. Immutable once
// built by the Normalizer.
type Item struct {
	Fingerprint string
	Title       string
	URL         string
	Summary     string
	SourceName  string
	PublishedAt *time.Time
}
