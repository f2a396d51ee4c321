package audit

import (
	"context"
	"sync"

	id "datencheck/pkg/domain"
)

// InMemoryStore keeps events per tree in append order.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.TreeID][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.TreeID][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.TreeID] = append(s.events[event.TreeID], event)
	return nil
}

// ListByTree returns a copy of the events recorded for tree.
func (s *InMemoryStore) ListByTree(_ context.Context, tree id.TreeID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[tree]...), nil
}
