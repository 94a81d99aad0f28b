package config

import (
	"sync"
	"time"
)

// Cache is a minimal in-process cache to trim store reads on hot paths.
// A zero ttl on Set means the entry never expires; resolved client
// documents live for the process lifetime (no hot reload). Lazy expiration
// on Get. Entries are only ever added or refreshed with the same value for
// a given key, so concurrent readers need no coordination beyond the lock.
type Cache[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]entry[V]
}

type entry[V any] struct {
	val V
	exp time.Time
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{data: make(map[K]entry[V])}
}

// Get returns the value and true if found and not expired; otherwise zero value and false.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.RLock()
	e, ok := c.data[k]
	c.mu.RUnlock()
	if !ok || (!e.exp.IsZero() && time.Now().After(e.exp)) {
		var zero V
		return zero, false
	}
	return e.val, true
}

// Set stores v under k. ttl 0 means no expiry.
func (c *Cache[K, V]) Set(k K, v V, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.data[k] = entry[V]{val: v, exp: exp}
	c.mu.Unlock()
}
