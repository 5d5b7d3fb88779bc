package serialport

import (
	"context"
	"fmt"
	"sync"
)

// Session is the live state for one open port: the owning handle plus
// the cancel function of the active background reader, if any.
//
// Invariant: cancel is non-nil exactly while a reader engine is running
// for this port; at most one reader is ever active per session.
type Session struct {
	handle Handle
	cancel context.CancelFunc
}

func (s *Session) reading() bool {
	return s.cancel != nil
}

// cancelRead signals the active reader to stop, if one exists. The
// signal is cooperative: the reader observes it between device read
// attempts, so termination lags by at most one read timeout. Calling
// cancelRead with no active reader is a no-op.
func (s *Session) cancelRead() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Registry is the mutation-safe table of open ports and the single
// source of truth for "is this port open". A session exists in the
// registry if and only if its underlying device connection is open.
//
// The registry lock is the sole serialization point for the table. It
// is never held across blocking device I/O, with one deliberate
// exception: handle duplication at read-start time happens under the
// lock (see Manager.StartRead).
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// WithSession looks up path and invokes f with exclusive access to its
// session, returning f's result. It fails with ErrNotFound when the
// port is not open.
func (r *Registry) WithSession(path string, f func(*Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return f(s)
}

// Insert adds a session for path, failing with ErrAlreadyOpen when an
// entry is already present. The existing session is left untouched.
func (r *Registry) Insert(path string, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[path]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyOpen, path)
	}
	r.sessions[path] = s
	return nil
}

// Contains reports whether path has an open session
func (r *Registry) Contains(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[path]
	return ok
}

// Remove removes and returns the session for path. The caller takes
// ownership and is responsible for cancelling any active reader and
// closing the handle.
func (r *Registry) Remove(path string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	delete(r.sessions, path)
	return s, nil
}

// RemoveAll atomically empties the registry and returns every removed
// session keyed by path. No caller can observe a partially cleared
// table.
func (r *Registry) RemoveAll() map[string]*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := r.sessions
	r.sessions = make(map[string]*Session)
	return removed
}

// Len returns the number of open sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
