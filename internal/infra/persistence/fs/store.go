// Package fs provides the default durable backend: one JSON snapshot file per
// collection under a data directory.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"librarycore/pkg/domain"
)

// Compile-time contract assertion ensuring the backend satisfies the domain interface.
var _ domain.Backend = (*Backend)(nil)

// Backend maps buckets to files named <bucket>.json inside its root
// directory. Saves are whole-file replacements.
type Backend struct {
	dir string
}

// New returns a filesystem backend rooted at dir, creating it if needed.
// An empty dir falls back to ./data.
func New(dir string) (*Backend, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Backend{dir: dir}, nil
}

// Dir returns the backend's root directory.
func (b *Backend) Dir() string { return b.dir }

// Bucket returns the durable handle for the named collection.
func (b *Backend) Bucket(name string) domain.Bucket {
	return &bucket{path: filepath.Join(b.dir, name+".json")}
}

// Close implements domain.Backend; the filesystem backend holds no handles.
func (b *Backend) Close() error { return nil }

type bucket struct {
	path string
}

func (f *bucket) Load() ([]byte, bool, error) {
	payload, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", f.path, err)
	}
	return payload, true, nil
}

func (f *bucket) Save(payload []byte) error {
	if err := os.WriteFile(f.path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}
