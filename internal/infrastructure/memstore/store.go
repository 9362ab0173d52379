// Package memstore provides the owned in-memory store backing every domain
// repository. All state lives behind lock-guarded maps; snapshots handed to
// callers are deep copies, so nothing outside the store can mutate stored
// entities except through the repository operations.
package memstore

import (
	"sync"

	"github.com/google/uuid"
)

// store is a lock-guarded map of deep-copied entities. clone must copy every
// mutable field (slices in particular) so stored state never aliases caller
// state.
type store[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*T
	clone func(*T) *T
}

func newStore[T any](clone func(*T) *T) *store[T] {
	return &store[T]{
		items: make(map[uuid.UUID]*T),
		clone: clone,
	}
}

func (s *store[T]) get(id uuid.UUID) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if item, ok := s.items[id]; ok {
		return s.clone(item)
	}
	return nil
}

func (s *store[T]) list(filter func(*T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if filter == nil || filter(item) {
			result = append(result, *s.clone(item))
		}
	}
	return result
}

func (s *store[T]) put(id uuid.UUID, item *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = s.clone(item)
}

func (s *store[T]) delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

func (s *store[T]) count(filter func(*T) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, item := range s.items {
		if filter == nil || filter(item) {
			n++
		}
	}
	return n
}

// find returns the first entity matching the predicate
func (s *store[T]) find(pred func(*T) bool) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if pred(item) {
			return s.clone(item)
		}
	}
	return nil
}
