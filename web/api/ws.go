package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsPingInterval = 30 * time.Second
	wsPongTimeout  = 90 * time.Second // Allow missing 2 pings before disconnect
)

// wsHandler streams notifier events over a websocket. The client is
// expected to answer pings; a silent connection is dropped after the
// pong timeout.
func (s *Server) wsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, filtered := userParam(r)

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("upgrade failed: %v", err)
			return
		}

		events, cancelSub := s.hub.Subscribe()

		// Reader goroutine: we never expect data frames, but reading is
		// what services pong frames and detects the close.
		readerDone := make(chan struct{})
		conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
			return nil
		})
		go func() {
			defer close(readerDone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
						log.Printf("ws read error: %v", err)
					}
					return
				}
			}
		}()

		pings := time.NewTicker(wsPingInterval)
		defer func() {
			pings.Stop()
			cancelSub()
			conn.Close()
		}()

		for {
			select {
			case <-readerDone:
				return
			case <-pings.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			case ev, ok := <-events:
				if !ok {
					return
				}
				if filtered && ev.User != user {
					continue
				}
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			}
		}
	}
}
