// Package sqlite provides a durable backend that stores each collection
// snapshot as a row in a single SQLite table.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"librarycore/pkg/domain"
)

// Compile-time contract assertion ensuring the backend satisfies the domain interface.
var _ domain.Backend = (*Backend)(nil)

// Backend keeps one row per bucket in a state table. Every save upserts the
// bucket's payload wholesale, mirroring the snapshot-per-mutation model.
type Backend struct {
	db   *sql.DB
	path string
}

// New opens (and initializes if needed) a SQLite-backed durable backend at
// path. An empty path falls back to ./librarycore.db.
func New(path string) (*Backend, error) {
	if path == "" {
		path = "librarycore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Backend{db: db, path: path}, nil
}

// Bucket returns the durable handle for the named collection.
func (b *Backend) Bucket(name string) domain.Bucket {
	return &bucket{db: b.db, name: name}
}

// Close closes the underlying database handle.
func (b *Backend) Close() error { return b.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (b *Backend) DB() *sql.DB { return b.db }

// Path returns the configured database path.
func (b *Backend) Path() string { return b.path }

type bucket struct {
	db   *sql.DB
	name string
}

func (s *bucket) Load() ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM state WHERE bucket = ?`, s.name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", s.name, err)
	}
	return payload, true, nil
}

func (s *bucket) Save(payload []byte) error {
	if _, err := s.db.Exec(
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		s.name, payload,
	); err != nil {
		return fmt.Errorf("upsert %s: %w", s.name, err)
	}
	return nil
}
