package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB

	// InMemory reports whether the persistent store was unavailable and the
	// process fell back to a volatile database.
	InMemory bool
}

// Open connects to the SQLite database at path and applies migrations. If the
// persistent database cannot be opened or migrated, it falls back to an
// in-memory database so that startup never fails on storage unavailability.
func Open(path string) (*DB, error) {
	db, err := open(path)
	if err == nil {
		return db, nil
	}

	slog.Warn("Persistent database unavailable, falling back to in-memory store",
		"path", path, "error", err)

	memDB, memErr := open(":memory:")
	if memErr != nil {
		return nil, fmt.Errorf("failed to open fallback in-memory database: %w", memErr)
	}
	memDB.InMemory = true

	return memDB, nil
}

func open(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; a single connection also keeps the
	// in-memory fallback from fragmenting across connections.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{DB: sqlDB}

	if err := RunMigrations(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
