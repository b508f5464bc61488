// Package memory provides an in-memory durable backend used for tests and
// ephemeral environments. It also counts saves per bucket so tests can assert
// which operations triggered a durable write.
package memory

import (
	"sync"

	"librarycore/pkg/domain"
)

// Compile-time contract assertion ensuring the backend satisfies the domain interface.
var _ domain.Backend = (*Backend)(nil)

// Backend holds bucket payloads in process memory.
type Backend struct {
	mu       sync.Mutex
	payloads map[string][]byte
	saves    map[string]int
}

// New returns an empty in-memory backend.
func New() *Backend {
	return &Backend{
		payloads: make(map[string][]byte),
		saves:    make(map[string]int),
	}
}

// Bucket returns the durable handle for the named collection.
func (b *Backend) Bucket(name string) domain.Bucket {
	return &bucket{backend: b, name: name}
}

// Close implements domain.Backend.
func (b *Backend) Close() error { return nil }

// SaveCount reports how many saves the named bucket has received.
func (b *Backend) SaveCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves[name]
}

// Seed places a payload into a bucket without counting it as a save, so
// tests can model pre-existing durable state.
func (b *Backend) Seed(name string, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payloads[name] = append([]byte(nil), payload...)
}

type bucket struct {
	backend *Backend
	name    string
}

func (m *bucket) Load() ([]byte, bool, error) {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	payload, ok := m.backend.payloads[m.name]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

func (m *bucket) Save(payload []byte) error {
	m.backend.mu.Lock()
	defer m.backend.mu.Unlock()
	m.backend.payloads[m.name] = append([]byte(nil), payload...)
	m.backend.saves[m.name]++
	return nil
}
