package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"study-buddy/internal/shell"
)

// Registry maps browser sessions to their Shell. State lives in memory only
// and is dropped after ttl of inactivity.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	newShell func() *shell.Shell
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	shell    *shell.Shell
	lastSeen time.Time
}

// DefaultSessionTTL applies when NewRegistry is given a non-positive ttl.
const DefaultSessionTTL = 30 * time.Minute

func NewRegistry(ttl time.Duration, newShell func() *shell.Shell) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		ttl:      ttl,
		now:      time.Now,
		newShell: newShell,
		sessions: make(map[string]*sessionEntry),
	}
}

// Get returns the shell for id, creating a new session when id is unknown.
// The returned id is the one to hand back to the browser.
func (r *Registry) Get(id string) (*shell.Shell, string) {
	if sh, ok := r.Lookup(id); ok {
		return sh, id
	}
	return r.Create()
}

// Lookup returns the live shell for id and marks it as used.
func (r *Registry) Lookup(id string) (*shell.Shell, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.sessions[id]
	if !ok || r.expired(e, now) {
		return nil, false
	}
	e.lastSeen = now
	return e.shell, true
}

// Create registers a fresh session.
func (r *Registry) Create() (*shell.Shell, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	e := &sessionEntry{shell: r.newShell(), lastSeen: r.now()}
	r.sessions[id] = e
	return e.shell, id
}

// Blank returns an unregistered shell for reads from unknown browsers.
func (r *Registry) Blank() *shell.Shell {
	return r.newShell()
}

func (r *Registry) expired(e *sessionEntry, now time.Time) bool {
	return now.Sub(e.lastSeen) > r.ttl
}

// Sweep removes expired sessions and reports how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
