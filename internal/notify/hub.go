package notify

import (
	"sync"

	"github.com/google/uuid"

	"github.com/pomodux/pomodux/internal/domain"
)

// EventType says whether a message was created or edited
type EventType string

const (
	EventCreated EventType = "created"
	EventEdited  EventType = "edited"
)

// Event is one rendered message change, fanned out to subscribers
type Event struct {
	Type     EventType     `json:"type"`
	User     domain.UserID `json:"user"`
	Handle   Handle        `json:"handle"`
	Text     string        `json:"text"`
	Controls Controls      `json:"controls,omitempty"`
}

// Hub is the primary Notifier: an in-process fan-out that hands every
// announce/update to its subscribers (SSE clients, websocket clients,
// the TUI). Handles are fresh UUIDs; the hub keeps track of which user
// a handle belongs to so edits can be routed.
type Hub struct {
	mu     sync.RWMutex
	owners map[Handle]domain.UserID
	subs   map[chan Event]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		owners: make(map[Handle]domain.UserID),
		subs:   make(map[chan Event]struct{}),
	}
}

// Subscribe registers a consumer. The returned cancel func must be
// called when the consumer goes away. Slow consumers lose events rather
// than block the core.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 64)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Announce creates a new message handle and broadcasts the creation
func (h *Hub) Announce(user domain.UserID, text string, controls Controls) (Handle, error) {
	handle := Handle(uuid.NewString())
	h.mu.Lock()
	h.owners[handle] = user
	h.mu.Unlock()

	h.publish(Event{Type: EventCreated, User: user, Handle: handle, Text: text, Controls: controls})
	return handle, nil
}

// Update broadcasts an edit of an existing message
func (h *Hub) Update(handle Handle, text string, controls Controls) error {
	h.mu.RLock()
	user, ok := h.owners[handle]
	h.mu.RUnlock()
	if !ok {
		return ErrUnknownHandle
	}

	h.publish(Event{Type: EventEdited, User: user, Handle: handle, Text: text, Controls: controls})
	return nil
}

// Forget drops a handle once its message will never be edited again
func (h *Hub) Forget(handle Handle) {
	h.mu.Lock()
	delete(h.owners, handle)
	h.mu.Unlock()
}
