package cache_test

import (
	"testing"
	"time"

	"upboard/internal/infra/cache"
)

func TestCache_SetGet(t *testing.T) {
	c := cache.New[map[string]string](time.Minute)

	names := map[string]string{"groceries": "Groceries"}
	c.Set("categories:abc", names)

	got, ok := c.Get("categories:abc")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got["groceries"] != "Groceries" {
		t.Errorf("got %v", got)
	}
}

func TestCache_Miss(t *testing.T) {
	c := cache.New[string](time.Minute)
	if _, ok := c.Get("absent"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := cache.New[string](10 * time.Millisecond)
	c.Set("k", "v")

	time.Sleep(25 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[int](time.Minute)
	c.Set("k", 42)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestCache_Close(t *testing.T) {
	c := cache.New[string](time.Minute)
	c.Set("k", "v")

	c.Close()
	c.Close() // idempotent

	// The cache stays usable after Close; only background cleanup stops.
	if got, ok := c.Get("k"); !ok || got != "v" {
		t.Errorf("Get after Close = %q, %v; want v, true", got, ok)
	}
	c.Set("k2", "v2")
	if _, ok := c.Get("k2"); !ok {
		t.Error("Set after Close should still work")
	}
}
