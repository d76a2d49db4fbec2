package database

import (
	"time"
)

// DeliveryStore answers membership queries over previously delivered items and
// records new deliveries. Implementations must be safe for concurrent callers
// and must not propagate storage failures: Has fails open (false), Record
// reports usability as a bool.
type DeliveryStore interface {
	Has(fingerprint string) bool
	Record(fingerprint, title, sourceName, url string, now time.Time) bool
	RecentDeliveries(limit int) ([]DeliveryRecord, error)
	Count() (int, error)
}
