package news

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filterer decides whether an item matches the configured interest profile.
// The keyword set is fixed at construction.
type Filterer struct {
	keywords []string
}

func NewFilterer(keywords []string) *Filterer {
	folder := cases.Fold()

	folded := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if trimmed := strings.TrimSpace(keyword); trimmed != "" {
			folded = append(folded, folder.String(trimmed))
		}
	}

	return &Filterer{keywords: folded}
}

// Run reports whether any configured keyword occurs in the item's title or
// summary, case-insensitively. Short-circuits on the first match.
func (f *Filterer) Run(item Item) bool {
	if len(f.keywords) == 0 {
		return false
	}

	// Casers are stateful, so one is created per call rather than shared.
	haystack := cases.Fold().String(item.Title + " " + item.Summary)

	for _, keyword := range f.keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}

	return false
}
