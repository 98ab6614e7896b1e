// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage keeps uploaded objects in a directory on disk and maps
// object keys to the public URLs they are served from.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/nailstudio/internal/util"
)

// PublicPrefix is the URL path the bucket directory is mounted at.
const PublicPrefix = "/uploads/"

// ErrInvalidKey is returned for keys that are empty, absolute or escape the
// bucket directory.
var ErrInvalidKey = errors.New("invalid storage key")

// Bucket stores objects under root. Keys use forward slashes regardless of
// the host OS.
type Bucket struct {
	root   string
	prefix string
}

// NewBucket creates root if needed.
func NewBucket(root string) (*Bucket, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving bucket directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating bucket directory: %w", err)
	}
	return &Bucket{root: abs, prefix: PublicPrefix}, nil
}

// Root returns the absolute bucket directory.
func (b *Bucket) Root() string {
	return b.root
}

// NewKey builds "<folder>/<slug>/<uuid>.<ext>". A section that yields no
// usable slug falls back to "general".
func NewKey(folder, section, ext string) string {
	slug := util.Slugify(section)
	if !util.IsValidSlug(slug) {
		slug = "general"
	}
	return path.Join(folder, slug, uuid.NewString()+"."+strings.TrimPrefix(strings.ToLower(ext), "."))
}

func (b *Bucket) resolve(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	clean := path.Clean(key)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidKey
	}

	full := filepath.Join(b.root, filepath.FromSlash(clean))
	rel, err := filepath.Rel(b.root, full)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidKey
	}
	return full, nil
}

// Put writes data under key and returns its public URL. The write goes to a
// temp file first so readers never see a partial object.
func (b *Bucket) Put(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := b.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating object directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("creating temp object: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("writing object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("closing object: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("setting object mode: %w", err)
	}
	if err := os.Rename(tmpName, full); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("storing object: %w", err)
	}

	return b.PublicURL(key), nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (b *Bucket) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := b.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing object: %w", err)
	}
	return nil
}

// Exists reports whether an object is stored under key.
func (b *Bucket) Exists(key string) bool {
	full, err := b.resolve(key)
	if err != nil {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

// PublicURL returns the URL path an object is served at.
func (b *Bucket) PublicURL(key string) string {
	return b.prefix + strings.TrimPrefix(key, "/")
}

// KeyFromURL reverses PublicURL. It returns "" for URLs outside the bucket.
func (b *Bucket) KeyFromURL(u string) string {
	if !strings.HasPrefix(u, b.prefix) {
		return ""
	}
	key := strings.TrimPrefix(u, b.prefix)
	if _, err := b.resolve(key); err != nil {
		return ""
	}
	return key
}
