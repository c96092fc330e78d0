package ui

import "testing"

func TestRenderCacheGetOrCompute(t *testing.T) {
	rc := NewRenderCache(4)
	calls := 0
	key := ComputeKey("observer", "python", 80, true)

	for i := 0; i < 3; i++ {
		got := rc.GetOrCompute(key, func() string {
			calls++
			return "rendered"
		})
		if got != "rendered" {
			t.Fatalf("got %q", got)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
	hits, misses := rc.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("hits=%d misses=%d, want 2/1", hits, misses)
	}
}

func TestRenderCacheEvictsOldest(t *testing.T) {
	rc := NewRenderCache(2)
	rc.Set(1, "a")
	rc.Set(2, "b")
	rc.Set(3, "c")

	if _, ok := rc.Get(1); ok {
		t.Error("oldest entry should be evicted")
	}
	if rc.Len() != 2 {
		t.Errorf("Len = %d, want 2", rc.Len())
	}
	rc.Clear()
	if rc.Len() != 0 {
		t.Error("Clear should empty the cache")
	}
}

func TestComputeKeySeparatesFields(t *testing.T) {
	if ComputeKey("ab", "c") == ComputeKey("a", "bc") {
		t.Error("field boundaries should affect the key")
	}
	if ComputeKey("x", 1) != ComputeKey("x", 1) {
		t.Error("key should be deterministic")
	}
}
