package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DeliveryRepository persists delivery records in SQLite. A single mutex
// serializes all statements so concurrent pipeline runs and API handlers
// cannot interleave reads and writes against the single-writer store.
type DeliveryRepository struct {
	db *DB
	mu sync.Mutex
}

var _ DeliveryStore = (*DeliveryRepository)(nil)

func NewDeliveryRepository(db *DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// Has reports whether a delivery record exists for the fingerprint. Fails
// open: a storage error is logged and reported as "not seen", trading
// duplicate notifications for availability.
func (r *DeliveryRepository) Has(fingerprint string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	var one int
	err := r.db.QueryRow(`SELECT 1 FROM sent_articles WHERE fingerprint = ?`, fingerprint).Scan(&one)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		slog.Warn("Delivery lookup failed, treating item as not yet sent",
			"fingerprint", fingerprint, "error", err)
		return false
	}

	return true
}

// Record inserts a delivery record if absent. Inserting an existing
// fingerprint is a no-op, not an error. Returns whether the store is usable.
func (r *DeliveryRepository) Record(fingerprint, title, sourceName, url string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`
		INSERT OR IGNORE INTO sent_articles (fingerprint, title, source, url, sent_at)
		VALUES (?, ?, ?, ?, ?)
	`, fingerprint, title, sourceName, url, now.UTC())
	if err != nil {
		slog.Warn("Failed to record delivery", "fingerprint", fingerprint, "error", err)
		return false
	}

	return true
}

// RecentDeliveries returns the most recent delivery records, newest first.
func (r *DeliveryRepository) RecentDeliveries(limit int) ([]DeliveryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`
		SELECT fingerprint, title, source, url, sent_at
		FROM sent_articles
		ORDER BY sent_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent deliveries: %w", err)
	}
	defer rows.Close()

	var records []DeliveryRecord
	for rows.Next() {
		var record DeliveryRecord
		err := rows.Scan(&record.Fingerprint, &record.Title, &record.SourceName,
			&record.URL, &record.DeliveredAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delivery rows: %w", err)
	}

	return records, nil
}

// Count returns the total number of delivery records.
func (r *DeliveryRepository) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM sent_articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count deliveries: %w", err)
	}
	return count, nil
}
