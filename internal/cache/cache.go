// Package cache provides a key/value store with per-entry expiry. The store
// is an optimization for its callers, never a dependency: any backend failure
// must be treated as a miss.
package cache

import "time"

// Store is the contract cache backends must satisfy.
type Store[T any] interface {
	// Get returns the cached value for key, or false when the key is absent
	// or its entry has expired.
	Get(key string) (T, bool)
	// Put stores value under key for the given ttl, replacing any previous entry.
	Put(key string, value T, ttl time.Duration)
	// Delete removes the entry for key, if any.
	Delete(key string)
}
