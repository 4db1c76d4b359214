package production

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
)

// Registry keeps open edit sessions so HTTP clients can drive them across
// requests. Sessions idle for longer than the TTL are dropped by a
// background janitor. Call Stop on shutdown.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*registryEntry
	ttl      time.Duration
	now      func() time.Time
	stop     chan struct{}
	done     chan struct{}
}

type registryEntry struct {
	session  *EditSession
	lastSeen time.Time
}

// NewRegistry creates a registry and starts its janitor.
func NewRegistry(ttl, sweepInterval time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[uuid.UUID]*registryEntry),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go r.janitor(sweepInterval)
	return r
}

// Stop terminates the janitor and waits for it to exit.
func (r *Registry) Stop() {
	close(r.stop)
	<-r.done
}

// Add registers s.
func (r *Registry) Add(s *EditSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = &registryEntry{session: s, lastSeen: r.now()}
}

// Get returns a live session and refreshes its idle timer.
func (r *Registry) Get(id uuid.UUID) (*EditSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok || r.expired(e) {
		delete(r.sessions, id)
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	e.lastSeen = r.now()
	return e.session, nil
}

// Remove forgets a session. Unknown ids are ignored.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of registered sessions, expired ones included
// until the next sweep.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) expired(e *registryEntry) bool {
	return r.now().Sub(e.lastSeen) > r.ttl
}

func (r *Registry) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.sessions {
		if r.expired(e) {
			delete(r.sessions, id)
		}
	}
}

func (r *Registry) janitor(interval time.Duration) {
	defer close(r.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}
