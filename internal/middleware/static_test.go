// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestStaticCache(t *testing.T) {
	rec := httptest.NewRecorder()
	StaticCache(3600)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/dist/css/app.css", nil))

	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestNoDirectoryListing(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/uploads/", http.StatusNotFound},
		{"/uploads/gallery/", http.StatusNotFound},
		{"/uploads/gallery/a.jpg", http.StatusOK},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		NoDirectoryListing(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}

func TestStripTrailingSlash(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantLoc string
	}{
		{"root untouched", "/", ""},
		{"no slash untouched", "/privacy", ""},
		{"trailing slash", "/privacy/", "/privacy"},
		{"keeps query", "/admin/submissions/?page=2", "/admin/submissions?page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			StripTrailingSlash(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if tt.wantLoc == "" {
				if rec.Code != http.StatusOK {
					t.Errorf("status = %d, want 200", rec.Code)
				}
				return
			}
			if rec.Code != http.StatusMovedPermanently {
				t.Errorf("status = %d, want 301", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != tt.wantLoc {
				t.Errorf("Location = %q, want %q", got, tt.wantLoc)
			}
		})
	}
}
