// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testAuthKey = []byte("12345678901234567890123456789012")

func TestDefaultCSRFConfig(t *testing.T) {
	tests := []struct {
		name   string
		appURL string
		isDev  bool
		want   []string
	}{
		{"production", "https://avdeeva.example", false, []string{"avdeeva.example"}},
		{"development", "http://localhost:8080", true, []string{"localhost:8080", "127.0.0.1:8080"}},
		{"development custom port", "http://localhost:3000", true, []string{"localhost:3000", "localhost:8080", "127.0.0.1:8080"}},
		{"bad url", "::", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCSRFConfig(testAuthKey, tt.appURL, tt.isDev)
			if len(cfg.AuthKey) != 32 {
				t.Errorf("expected 32-byte AuthKey, got %d bytes", len(cfg.AuthKey))
			}
			if strings.Join(cfg.TrustedOrigins, ",") != strings.Join(tt.want, ",") {
				t.Errorf("TrustedOrigins = %v, want %v", cfg.TrustedOrigins, tt.want)
			}
			// The csrf library expects host:port, not full URLs.
			for _, o := range cfg.TrustedOrigins {
				if strings.HasPrefix(o, "http") {
					t.Errorf("TrustedOrigin %q should not be a full URL", o)
				}
			}
		})
	}
}

func TestCSRF_CrossSitePostRejected(t *testing.T) {
	var reached bool
	handler := CSRF(DefaultCSRFConfig(testAuthKey, "https://avdeeva.example", false))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		}))

	tests := []struct {
		name       string
		method     string
		fetchSite  string
		wantStatus int
	}{
		{"cross-site post", http.MethodPost, "cross-site", http.StatusForbidden},
		{"same-origin post", http.MethodPost, "same-origin", http.StatusOK},
		{"cross-site get", http.MethodGet, "cross-site", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(tt.method, "https://avdeeva.example/contact", nil)
			req.Header.Set("Sec-Fetch-Site", tt.fetchSite)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if reached != (tt.wantStatus == http.StatusOK) {
				t.Errorf("reached = %v", reached)
			}
		})
	}
}

func TestCSRF_RejectionFormat(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testAuthKey, "https://avdeeva.example", false))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	t.Run("json client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "https://avdeeva.example/contact", strings.NewReader("{}"))
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		var body struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Success || body.Message != csrfRetryMessage {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("html form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "https://avdeeva.example/admin/services", nil)
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
		if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
			t.Errorf("Content-Type = %q, want text/plain", rec.Header().Get("Content-Type"))
		}
	})
}

func TestCSRF_CustomErrorHandler(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, "https://avdeeva.example", false)
	called := false
	cfg.ErrorHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		http.Error(w, "custom", http.StatusTeapot)
	})

	handler := CSRF(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	req := httptest.NewRequest(http.MethodPost, "https://avdeeva.example/admin/services", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusTeapot {
		t.Errorf("custom handler called=%v status=%d", called, rec.Code)
	}
}
