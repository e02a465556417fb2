package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKeyIsStableAndNamespaced(t *testing.T) {
	a := Key("paraphrase", "openai", "gpt-4o-mini", "some text")
	b := Key("paraphrase", "openai", "gpt-4o-mini", "some text")
	if a != b {
		t.Errorf("expected stable keys, got %s and %s", a, b)
	}
	if !strings.HasPrefix(a, "humanizer:v1:paraphrase:") {
		t.Errorf("unexpected key prefix: %s", a)
	}
	if Key("paraphrase", "ab", "c") == Key("paraphrase", "a", "bc") {
		t.Error("expected length-prefixed parts to produce distinct keys")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, ok := c.Get("k"); !ok || string(got) != "v" {
		t.Errorf("expected v, got %q (found=%v)", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
	_ = c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := Key("detect", "text")

	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := c.Get(key)
	if !ok || string(got) != "payload" {
		t.Errorf("expected payload, got %q (found=%v)", got, ok)
	}
	if err := c.Delete(key); err != nil {
		t.Errorf("delete: %v", err)
	}
	if err := c.Delete(key); err != nil {
		t.Errorf("expected deleting a missing key to succeed, got %v", err)
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	_ = c.Set("k", []byte("v"), -time.Second)
	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestLayeredCachePromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	fresh := NewLayeredCache(time.Minute, dir, time.Hour)
	if got, ok := fresh.Get("k"); !ok || string(got) != "v" {
		t.Fatalf("expected disk hit, got %q (found=%v)", got, ok)
	}
	if got, ok := fresh.memory.Get("k"); !ok || string(got) != "v" {
		t.Errorf("expected disk hit to be promoted to memory")
	}

	if err := fresh.Clear(); err != nil {
		t.Errorf("clear: %v", err)
	}
	if _, ok := fresh.Get("k"); ok {
		t.Error("expected miss after clear")
	}
}

func TestJSONHelpers(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	type verdict struct {
		Score float64 `json:"score"`
	}

	if err := SetJSON(c, "v", verdict{Score: 0.76}, 0); err != nil {
		t.Fatalf("set json: %v", err)
	}
	var got verdict
	if !GetJSON(c, "v", &got) || got.Score != 0.76 {
		t.Errorf("expected 0.76, got %+v", got)
	}
	_ = c.Set("bad", []byte("{"), 0)
	if GetJSON(c, "bad", &got) {
		t.Error("expected undecodable entry to miss")
	}
}
