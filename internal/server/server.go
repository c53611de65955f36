package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/habits/internal/habit"
	"github.com/dukerupert/habits/internal/handler"
	"github.com/dukerupert/habits/internal/metrics"
	"github.com/dukerupert/habits/internal/middleware"
	ws "github.com/dukerupert/habits/internal/websocket"
)

type Server struct {
	hub    *ws.Hub
	habitH *handler.HabitHandler
	logger *slog.Logger
}

func New(store *habit.Store, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	return &Server{
		hub:    hub,
		habitH: handler.NewHabitHandler(store, hub, logger.With("component", "habit")),
		logger: logger,
	}
}

// Hub returns the WebSocket hub so callers can close it on shutdown.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.habitH.Snapshot, s.logger.With("component", "websocket")))

	// Habit list
	mux.HandleFunc("GET /api/habits", s.habitH.List)
	mux.HandleFunc("POST /api/habits", s.habitH.Create)
	mux.HandleFunc("PUT /api/habits/{id}", s.habitH.Update)
	mux.HandleFunc("DELETE /api/habits/{id}", s.habitH.Delete)
	mux.HandleFunc("GET /api/habits/{id}/summary", s.habitH.Summary)

	// Active habit and day cursor
	mux.HandleFunc("POST /api/habits/{id}/open", s.habitH.Open)
	mux.HandleFunc("GET /api/active", s.habitH.Active)
	mux.HandleFunc("POST /api/active/toggle", s.habitH.Toggle)
	mux.HandleFunc("POST /api/active/prev", s.habitH.StepBackward)
	mux.HandleFunc("POST /api/active/next", s.habitH.StepForward)
	mux.HandleFunc("DELETE /api/active", s.habitH.Close)

	// Encrypted backups
	mux.HandleFunc("GET /api/export", s.habitH.Export)
	mux.HandleFunc("POST /api/import", s.habitH.Import)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
