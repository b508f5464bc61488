package core

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var expvarSeq uint64

// RequestRecorder tallies routed HTTP requests and failures per path. It is
// process-scoped mutable state: initialized at startup, never persisted, and
// reset only by a restart. The recorder is additionally published via expvar
// for process-local inspection.
type RequestRecorder struct {
	name  string
	mu    sync.Mutex
	total uint64
	fails uint64
	paths map[string]uint64
}

// RequestSnapshot captures a read-only view of the recorded tally.
type RequestSnapshot struct {
	Total      uint64            `json:"total"`
	Errors     uint64            `json:"errors"`
	Paths      map[string]uint64 `json:"paths"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// NewRequestRecorder constructs a recorder and publishes it under the
// supplied expvar name. When name is empty, a unique identifier is generated.
func NewRequestRecorder(name string) *RequestRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("request_recorder_%d", id)
	}
	rec := &RequestRecorder{
		name:  name,
		paths: make(map[string]uint64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *RequestRecorder) Name() string { return r.name }

// Observe records one routed request for the given path; failed marks any
// response with a client or server error status.
func (r *RequestRecorder) Observe(path string, failed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	r.paths[path]++
	if failed {
		r.fails++
	}
}

// Snapshot returns an immutable copy of the tally.
func (r *RequestRecorder) Snapshot() RequestSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := make(map[string]uint64, len(r.paths))
	for k, v := range r.paths {
		paths[k] = v
	}
	return RequestSnapshot{
		Total:      r.total,
		Errors:     r.fails,
		Paths:      paths,
		RecordedAt: time.Now().UTC(),
	}
}
