// Package postgres provides a durable backend that mirrors the sqlite
// snapshot table on a PostgreSQL server.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"librarycore/pkg/domain"
)

// Compile-time contract assertion ensuring the backend satisfies the domain interface.
var _ domain.Backend = (*Backend)(nil)

const (
	defaultDriver = "pgx"
	// Default DSN keeps parity with OpenBackend defaults while allowing overrides via env.
	defaultDSN = "postgres://localhost/librarycore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Backend stores one snapshot row per bucket in Postgres.
type Backend struct {
	db *sql.DB
}

// New opens a Postgres-backed durable backend using the provided DSN (falls
// back to defaultDSN), pings the server, and ensures the state table exists.
func New(dsn string) (*Backend, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS librarycore_state (
		bucket TEXT PRIMARY KEY,
		payload BYTEA NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Backend{db: db}, nil
}

// Bucket returns the durable handle for the named collection.
func (b *Backend) Bucket(name string) domain.Bucket {
	return &bucket{db: b.db, name: name}
}

// Close closes the underlying database handle.
func (b *Backend) Close() error { return b.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (b *Backend) DB() *sql.DB { return b.db }

type bucket struct {
	db   *sql.DB
	name string
}

func (s *bucket) Load() ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM librarycore_state WHERE bucket = $1`, s.name).Scan(&payload)
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
		`INSERT INTO librarycore_state(bucket,payload) VALUES($1,$2) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		s.name, payload,
	); err != nil {
		return fmt.Errorf("upsert %s: %w", s.name, err)
	}
	return nil
}
