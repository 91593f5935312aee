package services

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on an empty cache reported a hit")
	}

	c.Set("k", 42)
	v, ok := c.Get("k")
	if !ok {
		t.Fatal("Get missed a fresh entry")
	}
	if v.(int) != 42 {
		t.Errorf("Get = %v, want 42", v)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.Set("k", "v")

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("Get returned an expired entry")
	}
	// The expired entry was evicted on access.
	if c.Len() != 0 {
		t.Errorf("Len = %d after expired read, want 0", c.Len())
	}
}

func TestCacheSetRefreshesTTL(t *testing.T) {
	c := NewCache(30 * time.Millisecond)
	c.Set("k", 1)
	time.Sleep(20 * time.Millisecond)
	c.Set("k", 2)
	time.Sleep(20 * time.Millisecond)

	v, ok := c.Get("k")
	if !ok {
		t.Fatal("entry expired despite the refresh")
	}
	if v.(int) != 2 {
		t.Errorf("Get = %v, want 2", v)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("k", 1)
	c.Invalidate("k")

	if _, ok := c.Get("k"); ok {
		t.Error("Get returned an invalidated entry")
	}
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("dashboard:summary", 1)
	c.Set("dashboard:campus", 2)
	c.Set("other", 3)

	c.InvalidatePrefix("dashboard:")

	if _, ok := c.Get("dashboard:summary"); ok {
		t.Error("prefixed entry survived InvalidatePrefix")
	}
	if _, ok := c.Get("dashboard:campus"); ok {
		t.Error("prefixed entry survived InvalidatePrefix")
	}
	if _, ok := c.Get("other"); !ok {
		t.Error("unrelated entry was dropped")
	}
}
