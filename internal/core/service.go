package core

import (
	"fmt"
	"time"

	"librarycore/pkg/domain"
)

// Service owns the three collection stores and their shared durable backend.
type Service struct {
	books   *Store[domain.Book]
	readers *Store[domain.Reader]
	staff   *Store[domain.Staff]
	backend domain.Backend
}

// NewService hydrates one store per record kind from the supplied backend.
func NewService(backend domain.Backend) (*Service, error) {
	books, err := OpenStore[domain.Book](domain.KindBook, backend.Bucket(domain.KindBook.Bucket()))
	if err != nil {
		return nil, fmt.Errorf("open book store: %w", err)
	}
	readers, err := OpenStore[domain.Reader](domain.KindReader, backend.Bucket(domain.KindReader.Bucket()))
	if err != nil {
		return nil, fmt.Errorf("open reader store: %w", err)
	}
	staff, err := OpenStore[domain.Staff](domain.KindStaff, backend.Bucket(domain.KindStaff.Bucket()))
	if err != nil {
		return nil, fmt.Errorf("open staff store: %w", err)
	}
	return &Service{books: books, readers: readers, staff: staff, backend: backend}, nil
}

// Books returns the book collection store.
func (s *Service) Books() *Store[domain.Book] { return s.books }

// Readers returns the reader collection store.
func (s *Service) Readers() *Store[domain.Reader] { return s.readers }

// Staff returns the staff collection store.
func (s *Service) Staff() *Store[domain.Staff] { return s.staff }

// Close releases the durable backend.
func (s *Service) Close() error { return s.backend.Close() }

// Snapshot captures a point-in-time copy of all three collections, used by
// archive exports.
type Snapshot struct {
	Books      []domain.Book   `json:"books"`
	Readers    []domain.Reader `json:"readers"`
	Staff      []domain.Staff  `json:"staff"`
	ExportedAt time.Time       `json:"exported_at"`
}

// Snapshot returns the current state of every collection. Each store is read
// under its own lock; the combined snapshot is not a cross-collection
// transaction, which is acceptable because the collections are independent.
func (s *Service) Snapshot() Snapshot {
	return Snapshot{
		Books:      s.books.List(),
		Readers:    s.readers.List(),
		Staff:      s.staff.List(),
		ExportedAt: time.Now().UTC(),
	}
}
