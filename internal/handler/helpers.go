// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/nailstudio/internal/middleware"
	"github.com/olegiv/nailstudio/internal/service"
	"github.com/olegiv/nailstudio/internal/util"
)

// formFloat parses a decimal field, accepting a comma separator. A blank or
// malformed value yields invalid, which the validators reject.
func formFloat(r *http.Request, key string, invalid float64) float64 {
	return util.ParseFloat(r.FormValue(key), invalid)
}

// formInt parses an integer field. A blank value is zero.
func formInt(r *http.Request, key string, invalid int64) int64 {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return 0
	}
	return util.ParseInt64(v, invalid)
}

// formBool treats a checkbox as checked for "on", "true" and "1".
func formBool(r *http.Request, key string) bool {
	switch r.FormValue(key) {
	case "on", "true", "1":
		return true
	}
	return false
}

// logContentEvent records an admin mutation in the event log.
func logContentEvent(r *http.Request, events *service.EventService, message string, meta map[string]any) {
	if events == nil {
		return
	}
	if err := events.LogContentEvent(r.Context(), message, middleware.GetUserIDPtr(r), meta); err != nil {
		slog.Error("failed to log content event", "error", err)
	}
}
