package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, TemplateKey("cbc"), []byte(`{"name":"CBC"}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, TemplateKey("cbc"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"name":"CBC"}` {
		t.Errorf("Get = %q", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()

	if _, err := c.Get(context.Background(), TemplateKey("missing")); err != ErrCacheMiss {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != ErrCacheMiss {
		t.Fatalf("expected expired key to miss, got %v", err)
	}
	ok, err := c.Exists(ctx, "k")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("expired key must not report as existing")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "k"); err != ErrCacheMiss {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestMemoryCacheClearPattern(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	ctx := context.Background()

	keys := []string{TemplateKey("cbc"), TemplateKey("xray"), "other:1"}
	for _, k := range keys {
		if err := c.Set(ctx, k, []byte("v"), time.Minute); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}

	if err := c.Clear(ctx, "template:*"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	for _, k := range keys[:2] {
		if _, err := c.Get(ctx, k); err != ErrCacheMiss {
			t.Errorf("expected %s cleared, got %v", k, err)
		}
	}
	if _, err := c.Get(ctx, "other:1"); err != nil {
		t.Errorf("non-matching key must survive Clear, got %v", err)
	}
}
