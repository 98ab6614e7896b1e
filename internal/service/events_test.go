// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/testutil"
)

func TestLogEvent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db, testutil.TestLoggerSilent())
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "admin@example.com", "correct horse battery", "admin")
	if err := svc.LogContentEvent(ctx, "Service created", &user.ID, map[string]any{"service_id": 7}); err != nil {
		t.Fatalf("LogContentEvent failed: %v", err)
	}
	if err := svc.LogAuthEvent(ctx, model.EventLevelWarning, "Failed login", nil, nil); err != nil {
		t.Fatalf("LogAuthEvent failed: %v", err)
	}

	events, err := svc.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	var content, auth bool
	for _, e := range events {
		switch e.Category {
		case model.EventCategoryContent:
			content = true
			if e.Metadata != `{"service_id":7}` {
				t.Errorf("metadata = %q", e.Metadata)
			}
			if !e.UserID.Valid || e.UserID.Int64 != user.ID {
				t.Errorf("user_id = %v, want %d", e.UserID, user.ID)
			}
		case model.EventCategoryAuth:
			auth = true
			if e.Metadata != "{}" {
				t.Errorf("metadata = %q, want {}", e.Metadata)
			}
			if e.UserID.Valid {
				t.Error("user_id should be NULL")
			}
		}
	}
	if !content || !auth {
		t.Errorf("missing categories: content=%v auth=%v", content, auth)
	}
}

func TestDeleteOlderThan(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService(db, testutil.TestLoggerSilent())
	ctx := context.Background()

	if err := svc.LogEvent(ctx, model.EventLevelInfo, model.EventCategorySystem, "fresh", nil, nil); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	n, err := svc.DeleteOlderThan(ctx, time.Hour)
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if n != 0 {
		t.Errorf("deleted %d fresh events", n)
	}
}
