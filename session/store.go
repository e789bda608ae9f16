// Package session keeps one Playground per session so that several users or
// clients never share a source or output buffer.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/TheTrio/EspressoPlayground/playground"
)

// ErrSessionNotFound is returned for an unknown session id.
var ErrSessionNotFound = errors.New("session not found")

// Factory builds the Playground for a new session.
type Factory func() *playground.Playground

// Store is a volatile, process-local set of sessions keyed by UUID. It is
// safe for concurrent access.
type Store struct {
	mu       sync.RWMutex
	factory  Factory
	sessions map[string]*playground.Playground
}

// NewStore constructs an empty store that builds playgrounds with factory.
func NewStore(factory Factory) *Store {
	return &Store{factory: factory, sessions: make(map[string]*playground.Playground)}
}

// Create starts a new session with a random id.
func (s *Store) Create() (string, *playground.Playground) {
	id := uuid.NewString()
	p := s.factory()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = p
	return id, p
}

// Put registers p under id, replacing any existing session with that id.
// The id must be a valid UUID.
func (s *Store) Put(id string, p *playground.Playground) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("session: invalid id %q: %w", id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = p
	return nil
}

// Get returns the playground of an existing session.
func (s *Store) Get(id string) (*playground.Playground, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return p, nil
}

// Delete ends a session. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// IDs returns the session ids sorted for deterministic output.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
