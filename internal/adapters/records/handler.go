// Package records provides the HTTP surface of the record service: one REST
// resource family per collection kind, plus health, metrics, and archive
// export endpoints.
package records

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"librarycore/internal/blob"
	"librarycore/internal/core"
	"librarycore/pkg/domain"
)

// Handler routes verb+path to collection store operations and maps store
// outcomes to HTTP responses.
type Handler struct {
	service *core.Service
	metrics *Metrics
	archive blob.Store
	exports *exportLog
	mux     *http.ServeMux
}

// NewHandler wires up all routes. archive may be nil, which disables the
// export endpoints.
func NewHandler(service *core.Service, archive blob.Store) *Handler {
	h := &Handler{
		service: service,
		metrics: NewMetrics(core.NewRequestRecorder("")),
		archive: archive,
		exports: newExportLog(),
		mux:     http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP makes Handler an http.Handler. Every routed request is counted;
// responses with an error status additionally increment the failure tally.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(sw, r)
	h.metrics.Observe(r.URL.Path, sw.status)
}

func (h *Handler) routes() {
	h.mux.HandleFunc("GET /{$}", h.root)
	h.mux.HandleFunc("GET /health", h.health)
	h.mux.Handle("GET /metrics", h.metrics.HTTPHandler())

	registerResource(h, h.service.Books())
	registerResource(h, h.service.Readers())
	registerResource(h, h.service.Staff())

	if h.archive != nil {
		h.mux.HandleFunc("POST /admin/exports", h.createExport)
		h.mux.HandleFunc("GET /admin/exports", h.listExports)
		h.mux.HandleFunc("GET /admin/exports/{id}", h.getExport)
	}
}

// registerResource installs the five CRUD routes for one collection store.
func registerResource[R domain.Record](h *Handler, store *core.Store[R]) {
	base := "/" + store.Kind().Resource()
	h.mux.HandleFunc("GET "+base, handleList(store))
	h.mux.HandleFunc("GET "+base+"/{id}", handleGet(store))
	h.mux.HandleFunc("POST "+base, handleCreate(store))
	h.mux.HandleFunc("PUT "+base+"/{id}", handleUpdate(store))
	h.mux.HandleFunc("DELETE "+base+"/{id}", handleDelete(store))
}

func handleList[R domain.Record](store *core.Store[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, store.List())
	}
}

func handleGet[R domain.Record](store *core.Store[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		rec, err := store.Get(id)
		if err != nil {
			writeStoreError(w, store.Kind(), err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func handleCreate[R domain.Record](store *core.Store[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec R
		if err := readRecord(r, store.Kind(), &rec); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		created, err := store.Add(rec)
		if err != nil {
			writeStoreError(w, store.Kind(), err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdate[R domain.Record](store *core.Store[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var rec R
		if err := readRecord(r, store.Kind(), &rec); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		updated, err := store.Update(id, rec)
		if err != nil {
			writeStoreError(w, store.Kind(), err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDelete[R domain.Record](store *core.Store[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		// Deleting an absent id is a silent no-op, so the confirmation is
		// unconditional; only a failed durable write surfaces as an error.
		if _, err := store.Delete(id); err != nil {
			writeStoreError(w, store.Kind(), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": store.Kind().DisplayName() + " deleted successfully",
		})
	}
}

// ---------- status endpoints ----------

func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Library Management API",
	})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"requests": h.metrics.Snapshot(),
	})
}

// ---------- helpers ----------

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, kind domain.Kind, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, kind.DisplayName()+" not found")
	case errors.Is(err, domain.ErrDuplicateID):
		writeError(w, http.StatusConflict, kind.DisplayName()+" id already exists")
	case errors.Is(err, domain.ErrIDMismatch):
		writeError(w, http.StatusBadRequest, "payload id does not match path id")
	default:
		// Persist failures carry backend detail such as file paths; log the
		// wrapped error and keep the client-facing detail generic.
		slog.Error("durable write failed", "kind", string(kind), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to persist "+string(kind)+" record")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// readRecord decodes a request body into rec, rejecting unknown fields and
// bodies that omit any of the kind's required fields. Without the presence
// check an absent id would decode to zero and mint a phantom record.
func readRecord[R domain.Record](r *http.Request, kind domain.Kind, rec *R) error {
	defer func() { _ = r.Body.Close() }()
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	for _, name := range kind.RequiredFields() {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("missing required field %s", name)
		}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(rec)
}
