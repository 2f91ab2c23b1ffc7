package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetOrFetch is the cache-aside primitive of the pipeline. On a fresh hit it
// decodes and returns the cached value without calling fetch; on a miss or a
// stale entry it calls fetch once, stores the JSON-encoded result, and
// returns it. Fetch errors are returned as-is and never cached. The second
// return value reports whether the value came from cache.
//
// A cached value that no longer decodes (e.g. a record shape changed across
// deploys) is treated as a miss and refetched rather than failing.
func GetOrFetch[T any](ctx context.Context, c Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, bool, error) {
	var zero T

	raw, ok, err := c.Get(ctx, key)
	if err == nil && ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, true, nil
		}
	}
	// Cache read errors degrade to a fetch; the caller still gets a value.

	value, err := fetch(ctx)
	if err != nil {
		return zero, false, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return zero, false, fmt.Errorf("encode cache value for %s: %w", key, err)
	}
	if err := c.Set(ctx, key, encoded, ttl); err != nil {
		// A failed store is not a failed request.
		return value, false, nil
	}
	return value, false, nil
}
