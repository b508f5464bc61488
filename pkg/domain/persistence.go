package domain

// Backend provides durable snapshot storage, one bucket per collection.
// Implementations live under internal/infra/persistence and are selected by
// the core storage factory.
type Backend interface {
	// Bucket returns the durable handle for the named collection snapshot.
	Bucket(name string) Bucket

	// Close releases any resources held by the backend.
	Close() error
}

// Bucket stores the full serialized snapshot of one collection. Every save
// replaces the previous payload; there is no incremental write path.
type Bucket interface {
	// Load returns the stored payload. ok is false when no snapshot exists,
	// which is not an error (the collection starts empty).
	Load() (payload []byte, ok bool, err error)

	// Save replaces the stored payload with the given snapshot.
	Save(payload []byte) error
}
