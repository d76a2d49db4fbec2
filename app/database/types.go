package database

import (
	"time"
)

// DeliveryRecord marks an item as delivered. Created at most once per
// fingerprint, never updated or deleted by the pipeline.
type DeliveryRecord struct {
	Fingerprint string
	Title       string
	SourceName  string
	URL         string
	DeliveredAt time.Time
}
