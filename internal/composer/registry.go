package composer

import (
	"sync"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/idgen"
)

// Registry tracks the authoring sessions currently open on this
// instance, keyed by draft id. Sessions live only in memory; a draft
// that was never saved disappears with the process.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Composer
	gen      idgen.Generator
	clock    idgen.Clock
	store    JourneyStore
}

// NewRegistry creates an empty session registry.
func NewRegistry(gen idgen.Generator, clock idgen.Clock, store JourneyStore) *Registry {
	return &Registry{
		sessions: make(map[string]*Composer),
		gen:      gen,
		clock:    clock,
		store:    store,
	}
}

// Create opens a new authoring session with a seeded draft.
func (r *Registry) Create() *Composer {
	c := New(r.gen, r.clock, r.store)
	r.mu.Lock()
	r.sessions[c.ID()] = c
	r.mu.Unlock()
	return c
}

// Get returns the session with the given draft id.
func (r *Registry) Get(id string) (*Composer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.sessions[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return c, nil
}

// Remove drops a session from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
