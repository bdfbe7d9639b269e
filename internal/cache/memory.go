package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// MemoryStore is a thread-safe in-process Store. Expired entries are dropped
// lazily on read and opportunistically on write.
type MemoryStore[T any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[T]
	clock   clockwork.Clock
}

// NewMemoryStore creates a memory-backed store using the wall clock.
func NewMemoryStore[T any]() *MemoryStore[T] {
	return NewMemoryStoreWithClock[T](clockwork.NewRealClock())
}

// NewMemoryStoreWithClock creates a memory-backed store with an injected
// clock, so expiry can be tested without sleeping.
func NewMemoryStoreWithClock[T any](clock clockwork.Clock) *MemoryStore[T] {
	return &MemoryStore[T]{
		entries: make(map[string]memoryEntry[T]),
		clock:   clock,
	}
}

func (s *MemoryStore[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}
	if s.clock.Now().After(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Put may have refreshed it.
		if cur, still := s.entries[key]; still && s.clock.Now().After(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		var zero T
		return zero, false
	}
	return e.value, true
}

func (s *MemoryStore[T]) Put(key string, value T, ttl time.Duration) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry[T]{value: value, expiresAt: now.Add(ttl)}

	// Drop already-expired entries while we hold the write lock so the map
	// does not grow without bound under churning keys.
	for k, e := range s.entries {
		if k != key && now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

func (s *MemoryStore[T]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Len reports the number of entries currently held, expired or not.
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
