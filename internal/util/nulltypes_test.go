// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"testing"
)

func TestNullStringFromValue(t *testing.T) {
	tests := []struct {
		in        string
		wantValid bool
		wantStr   string
	}{
		{"/uploads/a.jpg", true, "/uploads/a.jpg"},
		{"  padded  ", true, "padded"},
		{"", false, ""},
		{"   ", false, ""},
	}
	for _, tt := range tests {
		got := NullStringFromValue(tt.in)
		if got.Valid != tt.wantValid || got.String != tt.wantStr {
			t.Errorf("NullStringFromValue(%q) = %+v", tt.in, got)
		}
	}
}

func TestStringOr(t *testing.T) {
	if got := StringOr(sql.NullString{String: "x", Valid: true}, "fb"); got != "x" {
		t.Errorf("got %q, want x", got)
	}
	if got := StringOr(sql.NullString{}, "fb"); got != "fb" {
		t.Errorf("got %q, want fb", got)
	}
	if got := StringOr(sql.NullString{Valid: true}, "fb"); got != "fb" {
		t.Errorf("empty valid string should fall back, got %q", got)
	}
}

func TestParseInt64(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"5", 5},
		{" 12 ", 12},
		{"-3", -3},
		{"", 7},
		{"abc", 7},
	}
	for _, tt := range tests {
		if got := ParseInt64(tt.in, 7); got != tt.want {
			t.Errorf("ParseInt64(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"1,5", 1.5},
		{"2", 2},
		{"", 1.5},
		{"two", 1.5},
	}
	for _, tt := range tests {
		if got := ParseFloat(tt.in, 1.5); got != tt.want {
			t.Errorf("ParseFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
