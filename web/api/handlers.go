package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/pomodux/pomodux/internal/domain"
	"github.com/pomodux/pomodux/internal/render"
	"github.com/pomodux/pomodux/internal/session"
	"github.com/pomodux/pomodux/internal/userstate"
)

// StartRequest is the body for timer/cycle start and stop calls
type StartRequest struct {
	UserID int64  `json:"user_id"`
	Kind   string `json:"kind,omitempty"`
}

// IntervalUpdateRequest is the body for interval configuration. Minutes
// is a json.Number so "abc" and fractional values are rejected here at
// the boundary rather than silently truncated.
type IntervalUpdateRequest struct {
	UserID  int64       `json:"user_id"`
	Kind    string      `json:"kind"`
	Minutes json.Number `json:"minutes"`
}

// StatsResponse is the API response for a user's statistics
type StatsResponse struct {
	Stats     domain.UserStats     `json:"stats"`
	Intervals domain.UserIntervals `json:"intervals"`
	Active    bool                 `json:"active"`
	Text      string               `json:"text"`
}

func parseKind(raw string) (domain.IntervalKind, bool) {
	switch domain.IntervalKind(raw) {
	case domain.Pomodoro, domain.ShortBreak, domain.LongBreak:
		return domain.IntervalKind(raw), true
	case "":
		return domain.Pomodoro, true
	default:
		return "", false
	}
}

func userParam(r *http.Request) (domain.UserID, bool) {
	raw := r.URL.Query().Get("user")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return domain.UserID(id), true
}

// writeRunError maps core errors onto HTTP statuses: contention is 409,
// a missing run 404, bad input 400.
func writeRunError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrAlreadyRunning):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNotRunning):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, userstate.ErrInvalidValue):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) startTimerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		kind, ok := parseKind(req.Kind)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown interval kind")
			return
		}

		if err := s.svc.StartTimer(domain.UserID(req.UserID), kind); err != nil {
			writeRunError(w, err)
			return
		}

		writeJSON(w, map[string]string{"status": "started", "kind": string(kind)})
	}
}

func (s *Server) startCycleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := s.svc.StartCycle(domain.UserID(req.UserID)); err != nil {
			writeRunError(w, err)
			return
		}

		writeJSON(w, map[string]string{"status": "started"})
	}
}

func (s *Server) stopHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := s.svc.Stop(domain.UserID(req.UserID)); err != nil {
			writeRunError(w, err)
			return
		}

		writeJSON(w, map[string]string{"status": "stopped"})
	}
}

func (s *Server) statsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		user, ok := userParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "missing or invalid user parameter")
			return
		}

		stats := s.svc.Stats(user)
		iv := s.svc.Intervals(user)
		writeJSON(w, StatsResponse{
			Stats:     stats,
			Intervals: iv,
			Active:    s.svc.Active(user),
			Text:      render.Stats(stats, iv),
		})
	}
}

func (s *Server) intervalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			user, ok := userParam(r)
			if !ok {
				writeError(w, http.StatusBadRequest, "missing or invalid user parameter")
				return
			}
			writeJSON(w, s.svc.Intervals(user))

		case http.MethodPut:
			var req IntervalUpdateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}

			kind, ok := parseKind(req.Kind)
			if !ok {
				writeError(w, http.StatusBadRequest, "unknown interval kind")
				return
			}

			minutes, err := strconv.Atoi(req.Minutes.String())
			if err != nil {
				writeError(w, http.StatusBadRequest, userstate.ErrInvalidValue.Error())
				return
			}

			if err := s.svc.UpdateInterval(domain.UserID(req.UserID), kind, minutes); err != nil {
				writeRunError(w, err)
				return
			}

			writeJSON(w, s.svc.Intervals(domain.UserID(req.UserID)))

		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}
