package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is the freshness-window cache shared by both data sources. Values are
// opaque byte payloads (JSON-encoded records); entries are replaced whole,
// never mutated in place, so a racing duplicate fetch can at worst overwrite
// with an equally fresh value.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key builds a cache key from a source kind and a normalized identifier,
// e.g. Key("weather", "london") or Key("prices", "aapl", "daily", "compact").
func Key(kind string, parts ...string) string {
	key := kind
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// Memory implements Cache with a map and per-entry expiry. The clock is
// injectable so staleness is testable without sleeping. Safe for concurrent
// use; at most one entry per key, last write wins.
type Memory struct {
	mu    sync.Mutex
	data  map[string]memoryEntry
	clock func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemory creates an in-memory cache using the wall clock.
func NewMemory() *Memory {
	return NewMemoryWithClock(time.Now)
}

// NewMemoryWithClock creates an in-memory cache with an explicit clock.
func NewMemoryWithClock(clock func() time.Time) *Memory {
	return &Memory{
		data:  make(map[string]memoryEntry),
		clock: clock,
	}
}

// Get returns the cached value if present and not past its freshness window.
// Stale entries are removed on access.
func (c *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.data[key]
	if !ok {
		return nil, false, nil
	}
	if c.clock().After(entry.expiresAt) {
		delete(c.data, key)
		return nil, false, nil
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

// Set stores a value with the given freshness window, replacing any previous
// entry for the key.
func (c *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = memoryEntry{
		value:     stored,
		expiresAt: c.clock().Add(ttl),
	}
	return nil
}
