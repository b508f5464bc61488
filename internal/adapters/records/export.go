package records

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"librarycore/internal/blob"
)

// Export describes one archived snapshot of all collections.
type Export struct {
	ID          string         `json:"id"`
	Key         string         `json:"key"`
	Driver      string         `json:"driver"`
	SizeBytes   int64          `json:"size_bytes"`
	Collections map[string]int `json:"collections"`
	CreatedAt   time.Time      `json:"created_at"`
}

// exportLog is the process-scoped record of exports taken since startup. The
// archived objects themselves are durable; the log is not.
type exportLog struct {
	mu    sync.RWMutex
	byID  map[string]Export
	order []string
}

func newExportLog() *exportLog {
	return &exportLog{byID: make(map[string]Export)}
}

func (l *exportLog) add(e Export) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byID[e.ID] = e
	l.order = append(l.order, e.ID)
}

func (l *exportLog) get(id string) (Export, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.byID[id]
	return e, ok
}

func (l *exportLog) list() []Export {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Export, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

func (h *Handler) createExport(w http.ResponseWriter, r *http.Request) {
	snap := h.service.Snapshot()
	payload, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	id := uuid.NewString()
	key := fmt.Sprintf("exports/%s.json", id)
	info, err := h.archive.Put(r.Context(), key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"export_id": id},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	export := Export{
		ID:        id,
		Key:       info.Key,
		Driver:    string(h.archive.Driver()),
		SizeBytes: info.Size,
		Collections: map[string]int{
			"books":   len(snap.Books),
			"readers": len(snap.Readers),
			"staff":   len(snap.Staff),
		},
		CreatedAt: snap.ExportedAt,
	}
	h.exports.add(export)
	writeJSON(w, http.StatusAccepted, map[string]any{"export": export})
}

func (h *Handler) listExports(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"exports": h.exports.list()})
}

func (h *Handler) getExport(w http.ResponseWriter, r *http.Request) {
	export, ok := h.exports.get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "export not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"export": export})
}
