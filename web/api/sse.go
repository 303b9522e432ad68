package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// sseHandler streams notifier events as server-sent events. With a
// user parameter only that user's messages are sent; without one the
// stream carries everything.
func (s *Server) sseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming not supported", http.StatusInternalServerError)
			return
		}

		// Set SSE headers
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		user, filtered := userParam(r)

		events, cancel := s.hub.Subscribe()
		defer cancel()

		done := r.Context().Done()
		for {
			select {
			case <-done:
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if filtered && ev.User != user {
					continue
				}
				data, _ := json.Marshal(ev)
				fmt.Fprintf(w, "event: %s\n", ev.Type)
				fmt.Fprintf(w, "data: %s\n\n", data)
				flusher.Flush()
			}
		}
	}
}
