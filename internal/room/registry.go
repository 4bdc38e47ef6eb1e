// internal/room/registry.go
package room

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry owns the set of active rooms. It is an explicit instance built
// at startup and injected into the gateway, not a package global, so tests
// can run independent registries in parallel.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room with the given id, creating an empty one on
// first reference. Idempotent.
func (s *Registry) GetOrCreate(id string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		r = New(id)
		s.rooms[id] = r
		logrus.Debugf("registry: created room %q", id)
	}
	return r
}

// Get returns the room with the given id without creating it.
func (s *Registry) Get(id string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Remove deletes a room from the registry. Called exactly when a room's
// player list becomes empty; no room may exist with zero players.
func (s *Registry) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
}

// ForEach visits every room over a snapshot of the map, so visitors may
// remove rooms from the registry while iterating. Used by the disconnect
// sweep.
func (s *Registry) ForEach(fn func(*Room)) {
	s.mu.Lock()
	rooms := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.mu.Unlock()
	for _, r := range rooms {
		fn(r)
	}
}

// Len reports the number of active rooms.
func (s *Registry) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
