// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/olegiv/nailstudio/internal/storage"
	"github.com/olegiv/nailstudio/internal/testutil"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	return db
}

// fakeSender records messages and returns err.
type fakeSender struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeSender) Send(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, text)
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// countingStore wraps a bucket and counts writes.
type countingStore struct {
	*storage.Bucket
	puts    int
	deletes int
	failDel bool
}

func (c *countingStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	c.puts++
	return c.Bucket.Put(ctx, key, data)
}

func (c *countingStore) Delete(ctx context.Context, key string) error {
	c.deletes++
	if c.failDel {
		return context.DeadlineExceeded
	}
	return c.Bucket.Delete(ctx, key)
}

func newCountingStore(t *testing.T) *countingStore {
	t.Helper()
	b, err := storage.NewBucket(t.TempDir())
	if err != nil {
		t.Fatalf("NewBucket: %v", err)
	}
	return &countingStore{Bucket: b}
}

func readObject(c *countingStore, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(c.Root(), filepath.FromSlash(key)))
}
