package cache

import (
	"sync"
	"time"

	"github.com/haulware/carriergate/internal/clock"
)

// Cache is a concurrency-safe store whose entries expire a fixed duration
// after they are written.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

type ttlCache[K comparable, V any] struct {
	clk clock.Clock

	mu      sync.RWMutex
	entries map[K]ttlEntry[V]
}

// NewTTLCache returns an in-memory Cache. Expiry is judged against the
// injected clock.
func NewTTLCache[K comparable, V any](clk clock.Clock) Cache[K, V] {
	return &ttlCache[K, V]{
		clk:     clk,
		entries: make(map[K]ttlEntry[V]),
	}
}

func (c *ttlCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.clk.Now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *ttlCache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prune()
	c.entries[key] = ttlEntry[V]{value: value, expiresAt: c.clk.Now().Add(ttl)}
}

// prune drops expired entries. Called with the write lock held.
func (c *ttlCache[K, V]) prune() {
	now := c.clk.Now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}
