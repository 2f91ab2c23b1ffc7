package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

// fakeClock is an adjustable clock for staleness tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)}
}

// TestMemory_GetSet verifies that Set stores values and Get retrieves them.
func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	if err := c.Set(ctx, "weather:seattle", []byte(`{"t":12.5}`), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, "weather:seattle")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if !bytes.Equal(got, []byte(`{"t":12.5}`)) {
		t.Errorf("Get() = %s, want %s", got, `{"t":12.5}`)
	}
}

// TestMemory_Get_Miss verifies that Get returns ok=false when the key is absent.
func TestMemory_Get_Miss(t *testing.T) {
	c := NewMemory()

	_, ok, err := c.Get(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() ok = true, want false for miss")
	}
}

// TestMemory_Get_Stale verifies that an entry older than its freshness window
// is treated as a miss and removed on access.
func TestMemory_Get_Stale(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := NewMemoryWithClock(clock.Now)

	if err := c.Set(ctx, "weather:seattle", []byte("v"), 5*time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	clock.Advance(4 * time.Minute)
	if _, ok, _ := c.Get(ctx, "weather:seattle"); !ok {
		t.Fatal("Get() ok = false within freshness window, want true")
	}

	clock.Advance(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "weather:seattle"); ok {
		t.Error("Get() ok = true past freshness window, want false")
	}
}

// TestMemory_LastWriteWins verifies that a key holds at most one entry.
func TestMemory_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	_ = c.Set(ctx, "k", []byte("first"), time.Minute)
	_ = c.Set(ctx, "k", []byte("second"), time.Minute)

	got, ok, _ := c.Get(ctx, "k")
	if !ok || string(got) != "second" {
		t.Errorf("Get() = %q, %v; want %q, true", got, ok, "second")
	}
}

// TestGetOrFetch_Idempotent verifies that two calls within the freshness
// window invoke the fetch function exactly once.
func TestGetOrFetch_Idempotent(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := NewMemoryWithClock(clock.Now)

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "value", nil
	}

	v1, hit1, err := GetOrFetch(ctx, c, "k", 5*time.Minute, fetch)
	if err != nil {
		t.Fatalf("GetOrFetch() error = %v", err)
	}
	if hit1 {
		t.Error("first GetOrFetch() reported a cache hit")
	}
	v2, hit2, err := GetOrFetch(ctx, c, "k", 5*time.Minute, fetch)
	if err != nil {
		t.Fatalf("GetOrFetch() error = %v", err)
	}
	if !hit2 {
		t.Error("second GetOrFetch() reported a miss within the freshness window")
	}

	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}
	if v1 != "value" || v2 != "value" {
		t.Errorf("values = %q, %q; want %q", v1, v2, "value")
	}
}

// TestGetOrFetch_Staleness verifies that a call after the freshness window
// has elapsed invokes the fetch function again.
func TestGetOrFetch_Staleness(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := NewMemoryWithClock(clock.Now)

	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if _, _, err := GetOrFetch(ctx, c, "k", 5*time.Minute, fetch); err != nil {
		t.Fatalf("GetOrFetch() error = %v", err)
	}

	clock.Advance(6 * time.Minute)
	v, hit, err := GetOrFetch(ctx, c, "k", 5*time.Minute, fetch)
	if err != nil {
		t.Fatalf("GetOrFetch() error = %v", err)
	}
	if hit {
		t.Error("GetOrFetch() reported a hit for a stale entry")
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2", calls)
	}
	if v != 2 {
		t.Errorf("value = %d, want refetched value 2", v)
	}
}

// TestGetOrFetch_ErrorNotCached verifies that fetch errors surface and are
// never stored.
func TestGetOrFetch_ErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", context.DeadlineExceeded
		}
		return "ok", nil
	}

	if _, _, err := GetOrFetch(ctx, c, "k", time.Minute, fetch); err == nil {
		t.Fatal("GetOrFetch() error = nil, want fetch error")
	}

	v, hit, err := GetOrFetch(ctx, c, "k", time.Minute, fetch)
	if err != nil {
		t.Fatalf("GetOrFetch() error = %v", err)
	}
	if hit {
		t.Error("error result was served from cache")
	}
	if v != "ok" {
		t.Errorf("value = %q, want %q", v, "ok")
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2", calls)
	}
}

// TestGetOrFetch_TypedValue verifies round-tripping of a struct value.
func TestGetOrFetch_TypedValue(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	type record struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
	}

	fetch := func(context.Context) (record, error) {
		return record{Name: "aapl", Value: 123.45}, nil
	}

	if _, _, err := GetOrFetch(ctx, c, "k", time.Minute, fetch); err != nil {
		t.Fatalf("GetOrFetch() error = %v", err)
	}
	got, hit, err := GetOrFetch(ctx, c, "k", time.Minute, fetch)
	if err != nil {
		t.Fatalf("GetOrFetch() error = %v", err)
	}
	if !hit {
		t.Error("expected cache hit")
	}
	if got.Name != "aapl" || got.Value != 123.45 {
		t.Errorf("got %+v", got)
	}
}

// TestKey verifies key construction.
func TestKey(t *testing.T) {
	if k := Key("weather", "london"); k != "weather:london" {
		t.Errorf("Key() = %q", k)
	}
	if k := Key("prices", "aapl", "daily", "compact"); k != "prices:aapl:daily:compact" {
		t.Errorf("Key() = %q", k)
	}
}
