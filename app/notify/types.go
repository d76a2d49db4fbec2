package notify

import (
	"fmt"
	"time"

	"newswatch/app/news"
)

// Status classifies one transport's delivery attempt.
type Status string

const (
	StatusSkipped Status = "skipped-not-configured"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Outcome reports the result of a single transport attempt for one item.
type Outcome struct {
	Transport string
	Status    Status
	Err       error
}

// Delivered reports whether at least one transport succeeded. Partial failure
// across transports still counts as delivered; total failure leaves the item
// eligible for retry on the next run.
func Delivered(outcomes []Outcome) bool {
	for _, outcome := range outcomes {
		if outcome.Status == StatusSuccess {
			return true
		}
	}
	return false
}

// Notification is the generic tuple every transport adapter translates into
// its own wire format.
type Notification struct {
	Title      string
	Message    string
	SourceName string
	URL        string
	Timestamp  time.Time
}

// NewItemNotification shapes a normalized item into the outbound notification.
func NewItemNotification(item news.Item) Notification {
	return Notification{
		Title:      fmt.Sprintf("AI News: %s", item.SourceName),
		Message:    item.Title + "\n\n" + item.Summary,
		SourceName: item.SourceName,
		URL:        item.URL,
		Timestamp:  time.Now(),
	}
}
