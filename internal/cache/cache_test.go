package cache

import (
	"encoding/json"
	"os"
	"testing"
	"time"
)

func writeEntry(t *testing.T, c *Cache, key string, entry Entry) {
	t.Helper()
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.entryPath(key), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCache_PutGet(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	key := Key("ollama", "llama3", "a.py", "print(1)\n")
	if _, ok := c.Get(key); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	if err := c.Put(key, "looks fine"); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != "looks fine" {
		t.Errorf("Get = %q, want %q", got, "looks fine")
	}
}

func TestCache_KeyChangesWithInputs(t *testing.T) {
	base := Key("ollama", "llama3", "a.py", "x")
	for name, other := range map[string]string{
		"reviewer": Key("anthropic", "llama3", "a.py", "x"),
		"model":    Key("ollama", "llama4", "a.py", "x"),
		"path":     Key("ollama", "llama3", "b.py", "x"),
		"content":  Key("ollama", "llama3", "a.py", "y"),
	} {
		if other == base {
			t.Errorf("changing %s did not change the key", name)
		}
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c, err := New(true, t.TempDir(), 1)
	if err != nil {
		t.Fatal(err)
	}
	key := Key("ollama", "m", "f.go", "content")
	if err := c.Put(key, "stale"); err != nil {
		t.Fatal(err)
	}

	// Rewrite the entry with an old timestamp instead of sleeping.
	c.ttlSeconds = 0
	if _, ok := c.Get(key); !ok {
		t.Fatal("entry should be valid with TTL disabled")
	}
	c.ttlSeconds = 1
	old := time.Now().Add(-time.Hour)
	entry := Entry{Key: key, Feedback: "stale", CreatedAt: old, TTL: 1}
	writeEntry(t, c, key, entry)
	if _, ok := c.Get(key); ok {
		t.Error("expired entry should miss")
	}
}

func TestCache_Disabled(t *testing.T) {
	c, err := New(false, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Enabled() {
		t.Error("cache should be disabled")
	}
	if err := c.Put("k", "v"); err != nil {
		t.Errorf("disabled Put error: %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("disabled cache should always miss")
	}
}

func TestCache_Clear(t *testing.T) {
	c, err := New(true, t.TempDir(), 3600)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Put(k, "v"); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	stats, err := c.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 {
		t.Errorf("after Clear, Entries = %d, want 0", stats.Entries)
	}
}
