package tui

import (
	"errors"
	"sync"

	"github.com/vovakirdan/dinox/internal/runner"
)

// ErrSessionActive is returned when a save key already has a connected session.
var ErrSessionActive = errors.New("tui: a session for this player is already running")

// sessionRegistry tracks the controller of every connected SSH player.
// A save key has at most one economy store at a time, so no two sessions
// write the same blob.
type sessionRegistry struct {
	mu     sync.Mutex
	active map[string]*runner.Controller
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{active: make(map[string]*runner.Controller)}
}

// acquire opens a controller for key, or fails with ErrSessionActive when
// key is already playing.
func (r *sessionRegistry) acquire(key string, open func() *runner.Controller) (*runner.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.active[key]; ok {
		return nil, ErrSessionActive
	}
	ctrl := open()
	r.active[key] = ctrl
	return ctrl, nil
}

// release writes the unsaved economy changes of key and frees it. The
// session's program must have exited.
func (r *sessionRegistry) release(key string) error {
	r.mu.Lock()
	ctrl, ok := r.active[key]
	delete(r.active, key)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return ctrl.Close()
}

// controller returns the active controller of key.
func (r *sessionRegistry) controller(key string) (*runner.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctrl, ok := r.active[key]
	return ctrl, ok
}

// count reports the number of connected players.
func (r *sessionRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}
