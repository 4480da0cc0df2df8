//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisCache_Integration(t *testing.T) {
	addr := os.Getenv("TEXRIG_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEXRIG_REDIS_ADDR not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache() error: %v", err)
	}
	defer c.Close()

	key := "texrig:test:" + Hash([]byte(t.Name()))
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get() on fresh key = hit:%v err:%v, want miss", hit, err)
	}

	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		t.Fatalf("Get() after Set = hit:%v err:%v, want hit", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get() = %q, want %q", data, "payload")
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get() after Delete should miss")
	}
}
