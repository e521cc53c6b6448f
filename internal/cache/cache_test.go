// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Tests are skipped when Valkey is unavailable.
package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testClient returns a client on DB 15 or skips if Valkey is not reachable.
func testClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "resp:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

func TestResponseCacheRoundTrip(t *testing.T) {
	rc := NewResponseCache(testClient(t), time.Minute)
	ctx := context.Background()

	if _, ok := rc.Get(ctx, "articles"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	rc.Set(ctx, "articles", []byte(`{"articles":[]}`))

	body, ok := rc.Get(ctx, "articles")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(body) != `{"articles":[]}` {
		t.Errorf("cached body: got %q", body)
	}
}

func TestResponseCacheInvalidateAll(t *testing.T) {
	rc := NewResponseCache(testClient(t), time.Minute)
	ctx := context.Background()

	rc.Set(ctx, "articles", []byte("a"))
	rc.Set(ctx, "categories", []byte("b"))
	rc.InvalidateAll(ctx)

	if _, ok := rc.Get(ctx, "articles"); ok {
		t.Error("articles entry survived invalidation")
	}
	if _, ok := rc.Get(ctx, "categories"); ok {
		t.Error("categories entry survived invalidation")
	}
}

func TestNilResponseCacheIsNoOp(t *testing.T) {
	var rc *ResponseCache
	ctx := context.Background()

	rc.Set(ctx, "articles", []byte("a"))
	rc.InvalidateAll(ctx)
	if _, ok := rc.Get(ctx, "articles"); ok {
		t.Error("nil cache must always miss")
	}
}
