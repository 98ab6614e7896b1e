// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestClientSummary(t *testing.T) {
	tests := []struct {
		name       string
		ua         string
		wantPrefix string
		wantSuffix string
	}{
		{
			name:       "iphone safari",
			ua:         "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			wantPrefix: "Safari / iOS",
			wantSuffix: "mobile",
		},
		{
			name:       "desktop chrome",
			ua:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			wantPrefix: "Chrome / Windows",
			wantSuffix: "desktop",
		},
		{
			name:       "unknown",
			ua:         "curl-like-thing",
			wantPrefix: "",
			wantSuffix: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClientSummary(tt.ua)
			if !strings.HasPrefix(got, tt.wantPrefix) || !strings.HasSuffix(got, tt.wantSuffix) {
				t.Errorf("ClientSummary() = %q, want prefix %q suffix %q", got, tt.wantPrefix, tt.wantSuffix)
			}
		})
	}
}

func TestClientSummary_Empty(t *testing.T) {
	if got := ClientSummary("  "); got != "" {
		t.Errorf("ClientSummary(blank) = %q, want empty", got)
	}
}
