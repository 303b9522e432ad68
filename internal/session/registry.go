// Package session enforces the one-run-per-user rule. The registry owns
// the user-to-run mapping; each run gets a Handle carrying its
// cancellation signal and a done channel so callers can tell "still
// running", "completed" and "cancelled" apart without racing on map
// deletion.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/pomodux/pomodux/internal/domain"
)

var (
	ErrAlreadyRunning = errors.New("a timer or cycle is already running")
	ErrNotRunning     = errors.New("no active timer or cycle")
)

// Status is the lifecycle state of a run
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Handle represents one active run. The owning goroutine must call
// Finish exactly when it returns; Finish is idempotent so it is safe
// against a concurrent Cancel.
type Handle struct {
	user   domain.UserID
	mode   domain.RunMode
	ctx    context.Context
	cancel context.CancelFunc
	reg    *Registry

	done      chan struct{}
	finish    sync.Once
	cancelled bool
	mu        sync.Mutex
}

// User returns the user this run belongs to
func (h *Handle) User() domain.UserID { return h.user }

// Mode returns whether this run is a single timer or a full cycle
func (h *Handle) Mode() domain.RunMode { return h.mode }

// Context is cancelled when the run is asked to stop
func (h *Handle) Context() context.Context { return h.ctx }

// Done is closed once the run has fully finished
func (h *Handle) Done() <-chan struct{} { return h.done }

// Status reports the current lifecycle state
func (h *Handle) Status() Status {
	select {
	case <-h.done:
	default:
		return StatusRunning
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return StatusCancelled
	}
	return StatusCompleted
}

// Finish deregisters the run and marks it done. Called by the running
// goroutine on natural completion and by Cancel; only the first call
// has any effect.
func (h *Handle) Finish() {
	h.finish.Do(func() {
		h.cancel()
		h.reg.remove(h)
		close(h.done)
	})
}

func (h *Handle) markCancelled() {
	h.mu.Lock()
	h.cancelled = true
	h.mu.Unlock()
}

// Registry maps each user to at most one active run
type Registry struct {
	mu   sync.Mutex
	runs map[domain.UserID]*Handle
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{runs: make(map[domain.UserID]*Handle)}
}

// TryStart registers a new run for the user. It is the sole gate
// against concurrent runs: of two simultaneous calls for one user,
// exactly one gets a Handle and the other ErrAlreadyRunning.
func (r *Registry) TryStart(user domain.UserID, mode domain.RunMode) (*Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[user]; exists {
		return nil, ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		user:   user,
		mode:   mode,
		ctx:    ctx,
		cancel: cancel,
		reg:    r,
		done:   make(chan struct{}),
	}
	r.runs[user] = h
	return h, nil
}

// Cancel signals the user's run to stop and removes it from the
// registry. Deregistration is synchronous: a TryStart immediately after
// a successful Cancel is accepted. Cancelling a run that already
// finished reports ErrNotRunning with no side effects.
func (r *Registry) Cancel(user domain.UserID) error {
	r.mu.Lock()
	h, exists := r.runs[user]
	if exists {
		delete(r.runs, user)
	}
	r.mu.Unlock()

	if !exists {
		return ErrNotRunning
	}

	h.markCancelled()
	h.cancel()
	return nil
}

// Active reports whether the user has a run in flight
func (r *Registry) Active(user domain.UserID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.runs[user]
	return exists
}

// Get returns the user's active run handle, if any
func (r *Registry) Get(user domain.UserID) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.runs[user]
	return h, ok
}

// Count returns the number of active runs across all users
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

// remove drops the handle only if it is still the registered run for
// its user, so a finished run never deletes its successor's entry.
func (r *Registry) remove(h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.runs[h.user]; ok && cur == h {
		delete(r.runs, h.user)
	}
}
