// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips unless STUDIO_TEST_REDIS_URL points at a server.
func skipIfNoRedis(t *testing.T) string {
	t.Helper()
	url := os.Getenv("STUDIO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: STUDIO_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache_Basic(t *testing.T) {
	url := skipIfNoRedis(t)

	opts := DefaultRedisCacheOptions()
	opts.URL = url
	opts.Prefix = "studio-test:"
	c, err := NewRedisCache(opts)
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	_ = c.Clear(ctx)

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if has, _ := c.Has(ctx, "k"); !has {
		t.Error("expected Has to report key")
	}

	_ = c.Set(ctx, "page:a", []byte("1"), 0)
	_ = c.Set(ctx, "page:b", []byte("2"), 0)
	if err := c.DeletePrefix(ctx, "page:"); err != nil {
		t.Fatalf("DeletePrefix: %v", err)
	}
	if _, err := c.Get(ctx, "page:a"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected miss after DeletePrefix, got %v", err)
	}

	if err := c.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestNewRedisCache_RequiresURL(t *testing.T) {
	if _, err := NewRedisCache(RedisCacheOptions{}); err == nil {
		t.Error("expected error for empty URL")
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	if _, err := NewRedisCache(RedisCacheOptions{URL: "http://not-redis"}); err == nil {
		t.Error("expected error for non-redis scheme")
	}
}
