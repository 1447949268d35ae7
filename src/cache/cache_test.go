package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestGetMissingKey(t *testing.T) {
	c := New(4, time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestSetAndGet(t *testing.T) {
	c := New(4, time.Minute)
	c.Set("k", "answer")

	got, ok := c.Get("k")
	if !ok || got != "answer" {
		t.Fatalf("Get = (%q, %v), want (answer, true)", got, ok)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected hit for a")
	}
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("a should have survived")
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestEntriesExpire(t *testing.T) {
	c := New(4, 10*time.Millisecond)
	c.Set("k", "answer")

	time.Sleep(25 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestKeyIsStableAndDistinct(t *testing.T) {
	a := Key("hash1", "query")
	if a != Key("hash1", "query") {
		t.Fatalf("key is not deterministic")
	}
	if a == Key("hash2", "query") {
		t.Fatalf("different fingerprints share a key")
	}
	if a == Key("hash1", "other query") {
		t.Fatalf("different queries share a key")
	}
	if len(a) != 64 {
		t.Fatalf("key length = %d, want 64", len(a))
	}
}

func TestUpdateRefreshesEntry(t *testing.T) {
	c := New(2, time.Minute)
	for i := 0; i < 5; i++ {
		c.Set("k", fmt.Sprintf("v%d", i))
	}
	got, ok := c.Get("k")
	if !ok || got != "v4" {
		t.Fatalf("Get = (%q, %v), want (v4, true)", got, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}
