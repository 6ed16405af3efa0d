package cache

import (
	"context"
	"testing"
	"time"
)

func TestMockCacheSetGet(t *testing.T) {
	c := NewMockCache()
	ctx := context.Background()

	if _, err := c.Get(ctx, "missing"); err != ErrMiss {
		t.Errorf("Get(missing) err = %v, want ErrMiss", err)
	}

	if err := c.Set(ctx, "related:tin-a", []byte(`{"ok":true}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, err := c.Get(ctx, "related:tin-a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("Get = %s", data)
	}
}

func TestMockCacheTTL(t *testing.T) {
	c := NewMockCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); err != ErrMiss {
		t.Errorf("expired key err = %v, want ErrMiss", err)
	}
}

func TestMockCacheInvalidate(t *testing.T) {
	c := NewMockCache()
	ctx := context.Background()

	_ = c.Set(ctx, "news:page:1", []byte("a"), 0)
	_ = c.Set(ctx, "news:page:2", []byte("b"), 0)
	_ = c.Set(ctx, "related:x", []byte("c"), 0)

	if err := c.Invalidate(ctx, "news:*"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	if _, err := c.Get(ctx, "news:page:1"); err != ErrMiss {
		t.Error("news:page:1 survived invalidation")
	}
	if _, err := c.Get(ctx, "related:x"); err != nil {
		t.Error("related:x dropped by unrelated pattern")
	}
}
