package memstore

import (
	"sync"

	"github.com/google/uuid"
)

// KeyedMutex serializes critical sections per entity id. It backs the
// per-inventory-item mutation lock and the per-table serialization of
// topology changes.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates a new keyed mutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[uuid.UUID]*entry)}
}

// Lock acquires the mutex for the given key, creating it on first use
func (k *KeyedMutex) Lock(key uuid.UUID) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the given key. The per-key entry is dropped
// once nobody holds or waits on it, so the map does not grow unbounded.
func (k *KeyedMutex) Unlock(key uuid.UUID) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("memstore: unlock of unlocked key")
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}

// WithLock runs fn while holding the key's mutex
func (k *KeyedMutex) WithLock(key uuid.UUID, fn func() error) error {
	k.Lock(key)
	defer k.Unlock(key)
	return fn()
}
