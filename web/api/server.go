// Package api exposes the run service over HTTP: JSON endpoints for
// the transport-to-core operations plus SSE and websocket streams of
// the notifier's message events.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pomodux/pomodux/internal/notify"
	"github.com/pomodux/pomodux/internal/run"
)

// Server is the HTTP API server
type Server struct {
	svc      *run.Service
	hub      *notify.Hub
	addr     string
	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// NewServer creates a new API server
func NewServer(svc *run.Service, hub *notify.Hub, addr string) *Server {
	s := &Server{
		svc:  svc,
		hub:  hub,
		addr: addr,
		mux:  http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/timer/start", s.startTimerHandler())
	s.mux.HandleFunc("/api/cycle/start", s.startCycleHandler())
	s.mux.HandleFunc("/api/run/stop", s.stopHandler())
	s.mux.HandleFunc("/api/stats", s.statsHandler())
	s.mux.HandleFunc("/api/intervals", s.intervalsHandler())
	s.mux.HandleFunc("/api/events", s.sseHandler())
	s.mux.HandleFunc("/api/ws", s.wsHandler())
}

// Handler returns the server's routing handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start runs the HTTP server until ctx is cancelled, then shuts it
// down gracefully. A listener failure is returned as-is.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
