package cache

import (
	"errors"
	"sync"
	"testing"
)

// touch loads key with its own value and reports whether load ran.
func touch(c *Cache[int, int], key int) (loaded bool) {
	_, _ = c.GetOrLoad(key, func() (int, error) {
		loaded = true
		return key, nil
	})
	return loaded
}

func TestCache_GetOrLoad(t *testing.T) {
	c := New[int, string](0)
	calls := 0
	load := func() (string, error) {
		calls++
		return "v", nil
	}

	for range 3 {
		v, err := c.GetOrLoad(7, load)
		if err != nil || v != "v" {
			t.Fatalf("GetOrLoad() = %q, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Len != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss, len 1", s)
	}
	if want := 2.0 / 3.0; s.HitRate != want {
		t.Errorf("HitRate = %v, want %v", s.HitRate, want)
	}
}

func TestCache_GetOrLoadErrorNotCached(t *testing.T) {
	c := New[int, string](0)
	boom := errors.New("boom")

	if _, err := c.GetOrLoad(1, func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Fatalf("GetOrLoad() error = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed load, want 0", c.Len())
	}

	v, err := c.GetOrLoad(1, func() (string, error) { return "ok", nil })
	if err != nil || v != "ok" {
		t.Errorf("GetOrLoad() retry = %q, %v", v, err)
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](4)
	for i := range 4 {
		touch(c, i)
	}
	// Touch 0 so 1 becomes the oldest.
	touch(c, 0)

	touch(c, 4) // over limit: evict down to 3 entries

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if got := c.Stats().Evictions; got != 2 {
		t.Errorf("Evictions = %d, want 2", got)
	}
	if touch(c, 0) {
		t.Error("recently used key 0 was evicted")
	}
	if !touch(c, 1) {
		t.Error("oldest key 1 survived eviction")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[int, int](0)
	touch(c, 1)
	touch(c, 1)
	c.Clear()

	if s := c.Stats(); s.Len != 0 || s.Hits != 0 || s.Misses != 0 {
		t.Errorf("Stats() after Clear = %+v", s)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int](16)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				_, _ = c.GetOrLoad((g*100+i)%32, func() (int, error) { return i, nil })
			}
		}()
	}
	wg.Wait()

	if c.Len() > 16 {
		t.Errorf("Len() = %d, exceeds soft limit", c.Len())
	}
}
