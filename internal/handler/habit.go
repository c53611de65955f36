package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dukerupert/habits/internal/backup"
	"github.com/dukerupert/habits/internal/day"
	"github.com/dukerupert/habits/internal/habit"
	"github.com/dukerupert/habits/internal/metrics"
	"github.com/dukerupert/habits/internal/websocket"
)

const (
	passphraseHeader = "X-Backup-Passphrase"
	maxImportBytes   = 10 << 20
)

type HabitHandler struct {
	store  *habit.Store
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewHabitHandler(s *habit.Store, hub *websocket.Hub, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{store: s, hub: hub, logger: logger}
}

func (h *HabitHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type habitRequest struct {
	Text string `json:"text"`
}

// activeResponse is the detail view: the summary of the opened habit plus
// the cursor.
type activeResponse struct {
	habit.Summary
	Cursor      day.Day `json:"cursor"`
	CursorLabel string  `json:"cursor_label"`
	Done        bool    `json:"done"`
}

func newActiveResponse(a habit.Active) activeResponse {
	return activeResponse{
		Summary:     habit.Summarize(a.Habit),
		Cursor:      a.Cursor,
		CursorLabel: a.Cursor.String(),
		Done:        a.Done(),
	}
}

// Snapshot is the state pushed to WebSocket clients when they connect.
func (h *HabitHandler) Snapshot() any {
	state := map[string]any{"habits": h.store.Habits()}
	if a, ok := h.store.Active(); ok {
		state["active"] = newActiveResponse(a)
	}
	return state
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Habits())
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	created, err := h.store.Add(req.Text)
	if err != nil {
		h.logger.Error("add habit", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add habit")
		return
	}
	metrics.RecordMutation("add")
	h.broadcast(websocket.NewMessage("habit", "created", created.ID, nil))

	writeJSON(w, http.StatusCreated, created)
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req habitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated, err := h.store.Rename(id, req.Text)
	if err != nil {
		h.writeStoreError(w, err, "failed to update habit")
		return
	}
	metrics.RecordMutation("rename")
	h.broadcast(websocket.NewMessage("habit", "updated", id, nil))

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a habit. Unknown ids succeed without changes.
func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Remove(id); err != nil {
		h.logger.Error("remove habit", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete habit")
		return
	}
	metrics.RecordMutation("remove")
	h.broadcast(websocket.NewMessage("habit", "deleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}

func (h *HabitHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.store.Summary(r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, err, "failed to summarize habit")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *HabitHandler) Open(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	a, err := h.store.Open(id)
	if err != nil {
		h.writeStoreError(w, err, "failed to open habit")
		return
	}
	h.broadcast(websocket.NewMessage("active", "opened", id, map[string]any{"cursor": a.Cursor.ISO()}))
	writeJSON(w, http.StatusOK, newActiveResponse(a))
}

func (h *HabitHandler) Active(w http.ResponseWriter, r *http.Request) {
	a, ok := h.store.Active()
	if !ok {
		writeError(w, http.StatusNotFound, "no active habit")
		return
	}
	writeJSON(w, http.StatusOK, newActiveResponse(a))
}

func (h *HabitHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	a, err := h.store.ToggleActiveDay()
	if err != nil {
		h.writeStoreError(w, err, "failed to toggle day")
		return
	}
	metrics.RecordMutation("toggle")
	h.broadcast(websocket.NewMessage("habit", "updated", a.Habit.ID, map[string]any{
		"day":  a.Cursor.ISO(),
		"done": a.Done(),
	}))
	writeJSON(w, http.StatusOK, newActiveResponse(a))
}

func (h *HabitHandler) StepBackward(w http.ResponseWriter, r *http.Request) {
	h.step(w, h.store.StepBackward)
}

func (h *HabitHandler) StepForward(w http.ResponseWriter, r *http.Request) {
	h.step(w, h.store.StepForward)
}

func (h *HabitHandler) step(w http.ResponseWriter, move func() (habit.Active, error)) {
	a, err := move()
	if err != nil {
		h.writeStoreError(w, err, "failed to move cursor")
		return
	}
	h.broadcast(websocket.NewMessage("active", "stepped", a.Habit.ID, map[string]any{"cursor": a.Cursor.ISO()}))
	writeJSON(w, http.StatusOK, newActiveResponse(a))
}

func (h *HabitHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.store.Close()
	h.broadcast(websocket.NewMessage("active", "closed", "", nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *HabitHandler) Export(w http.ResponseWriter, r *http.Request) {
	passphrase := r.Header.Get(passphraseHeader)
	if passphrase == "" {
		writeError(w, http.StatusBadRequest, passphraseHeader+" header is required")
		return
	}
	data, err := backup.Export(h.store, passphrase)
	if err != nil {
		h.logger.Error("export habits", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export habits")
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="habits.enc"`)
	w.Write(data)
}

func (h *HabitHandler) Import(w http.ResponseWriter, r *http.Request) {
	passphrase := r.Header.Get(passphraseHeader)
	if passphrase == "" {
		writeError(w, http.StatusBadRequest, passphraseHeader+" header is required")
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	n, err := backup.Import(h.store, data, passphrase)
	if err != nil {
		h.logger.Warn("import habits", "error", err)
		writeError(w, http.StatusBadRequest, "could not decrypt or decode backup")
		return
	}
	metrics.RecordMutation("replace")
	h.broadcast(websocket.NewMessage("habits", "replaced", "", map[string]any{"count": n}))

	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

func (h *HabitHandler) writeStoreError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, habit.ErrHabitNotFound):
		writeError(w, http.StatusNotFound, "habit not found")
	case errors.Is(err, habit.ErrNoActiveHabit):
		writeError(w, http.StatusConflict, "no active habit")
	default:
		h.logger.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
