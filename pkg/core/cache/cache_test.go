package cache

import (
	"errors"
	"testing"
	"time"
)

func newTestCache(maxItems int, ttl time.Duration) (*Cache[string], *time.Time) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	c := New[string](Config{MaxItems: maxItems, TTL: ttl})
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCache_GetSet(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	defer c.Close()

	if _, ok := c.Get("a"); ok {
		t.Fatal("Get on empty cache should miss")
	}
	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 1 || rate != 50 {
		t.Errorf("Stats() = %d, %d, %v", hits, misses, rate)
	}

	c.Delete("a")
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Delete", c.Size())
	}

	c.Set("b", "2")
	c.Set("c", "3")
	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() = %d after Clear", c.Size())
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) hit after Clear")
	}
}

func TestCache_Expiration(t *testing.T) {
	c, now := newTestCache(10, time.Minute)
	defer c.Close()

	c.Set("a", "1")
	c.SetWithTTL("forever", "2", 0)

	*now = now.Add(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("expired entry should miss")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("entry without TTL should not expire")
	}

	c.Set("b", "3")
	*now = now.Add(2 * time.Minute)
	c.cleanup()
	if c.Size() != 1 {
		t.Errorf("Size() = %d after cleanup, want 1", c.Size())
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c, now := newTestCache(2, 0)
	defer c.Close()

	c.Set("a", "1")
	*now = now.Add(time.Second)
	c.Set("b", "2")
	*now = now.Add(time.Second)

	// Overwriting an existing key does not evict
	c.Set("b", "2b")
	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}

	c.Set("c", "3")
	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry should be evicted")
	}
	if v, ok := c.Get("b"); !ok || v != "2b" {
		t.Errorf("Get(b) = %q, %v", v, ok)
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	defer c.Close()

	calls := 0
	fn := func() (string, error) {
		calls++
		return "v", nil
	}
	for i := 0; i < 3; i++ {
		if v, err := c.GetOrSet("k", fn); err != nil || v != "v" {
			t.Fatalf("GetOrSet() = %q, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	want := errors.New("boom")
	if _, err := c.GetOrSet("e", func() (string, error) { return "", want }); !errors.Is(err, want) {
		t.Errorf("GetOrSet() error = %v", err)
	}
	if _, ok := c.Get("e"); ok {
		t.Error("failed computation should not be stored")
	}
}

func TestKey(t *testing.T) {
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("Key should separate parts")
	}
	if Key("x") != Key("x") {
		t.Error("Key should be deterministic")
	}
	if len(Key("x")) != 64 {
		t.Errorf("len(Key) = %d, want 64", len(Key("x")))
	}
}
