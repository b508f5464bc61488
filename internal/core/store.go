// Package core implements the generic collection store shared by all record
// kinds: hydrate once from durable storage, serve reads from memory, and
// snapshot the whole collection back to durable storage on every mutation.
package core

import (
	"fmt"
	"log/slog"
	"sync"

	json "github.com/goccy/go-json"

	"librarycore/pkg/domain"
)

// snapshotIndent matches the durable file format: a JSON array written with
// four-space indentation.
const snapshotIndent = "    "

// Store holds one collection of records in memory and keeps it synchronized
// with a durable snapshot bucket. All mutating operations hold the write lock
// across the full read-modify-persist sequence, so a Store is safe for
// concurrent use; the three stores of a service are fully independent.
type Store[R domain.Record] struct {
	mu      sync.RWMutex
	kind    domain.Kind
	bucket  domain.Bucket
	records []R
}

// OpenStore hydrates a collection store from its durable bucket. A missing
// snapshot yields an empty collection. A malformed snapshot also yields an
// empty collection and logs a warning; the corrupt payload stays in place
// until the first successful mutation overwrites it.
func OpenStore[R domain.Record](kind domain.Kind, bucket domain.Bucket) (*Store[R], error) {
	payload, ok, err := bucket.Load()
	if err != nil {
		return nil, fmt.Errorf("load %s snapshot: %w", kind, err)
	}
	s := &Store[R]{kind: kind, bucket: bucket}
	if !ok || len(payload) == 0 {
		return s, nil
	}
	var records []R
	if err := json.Unmarshal(payload, &records); err != nil {
		slog.Warn("discarding corrupt collection snapshot",
			"collection", string(kind),
			"error", fmt.Errorf("%w: %v", domain.ErrCorruptState, err).Error())
		return s, nil
	}
	s.records = records
	return s, nil
}

// Kind returns the record kind held by the store.
func (s *Store[R]) Kind() domain.Kind { return s.kind }

// List returns a copy of the collection in insertion order.
func (s *Store[R]) List() []R {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]R, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id, or ErrNotFound.
func (s *Store[R]) Get(id int) (R, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.RecordID() == id {
			return rec, nil
		}
	}
	var zero R
	return zero, fmt.Errorf("%s %d: %w", s.kind, id, domain.ErrNotFound)
}

// Add appends a record and persists the collection. A duplicate id fails with
// ErrDuplicateID and leaves both memory and durable state untouched. When the
// durable write fails after the append, the in-memory record is kept and the
// error returned; memory and durable state diverge until the next successful
// save.
func (s *Store[R]) Add(rec R) (R, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero R
	for _, existing := range s.records {
		if existing.RecordID() == rec.RecordID() {
			return zero, fmt.Errorf("%s %d: %w", s.kind, rec.RecordID(), domain.ErrDuplicateID)
		}
	}
	s.records = append(s.records, rec)
	if err := s.persist(); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update replaces the record stored under id, preserving its position. The
// payload must carry the same id (ErrIDMismatch otherwise); a missing record
// fails with ErrNotFound and leaves the collection unchanged.
func (s *Store[R]) Update(id int, rec R) (R, error) {
	var zero R
	if rec.RecordID() != id {
		return zero, fmt.Errorf("%s %d: payload id %d: %w", s.kind, id, rec.RecordID(), domain.ErrIDMismatch)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.RecordID() == id {
			s.records[i] = rec
			if err := s.persist(); err != nil {
				return zero, err
			}
			return rec, nil
		}
	}
	return zero, fmt.Errorf("%s %d: %w", s.kind, id, domain.ErrNotFound)
}

// Delete removes the record with the given id if present and reports whether
// a removal happened. Deleting an absent id is a no-op and performs no
// durable write.
func (s *Store[R]) Delete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.records {
		if existing.RecordID() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			if err := s.persist(); err != nil {
				return true, err
			}
			return true, nil
		}
	}
	return false, nil
}

// persist snapshots the full collection to the durable bucket. Callers must
// hold the write lock.
func (s *Store[R]) persist() error {
	records := s.records
	if records == nil {
		records = []R{}
	}
	payload, err := json.MarshalIndent(records, "", snapshotIndent)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", s.kind, err)
	}
	if err := s.bucket.Save(payload); err != nil {
		return fmt.Errorf("save %s snapshot: %w", s.kind, err)
	}
	return nil
}
