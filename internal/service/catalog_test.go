// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/nailstudio/internal/testutil"
)

func TestCatalogService_Validate(t *testing.T) {
	svc := NewCatalogService(nil, nil, testutil.TestLoggerSilent())

	tests := []struct {
		name  string
		in    ServiceInput
		field string
	}{
		{"valid", ServiceInput{Title: "Маникюр", DurationHours: 1.5}, ""},
		{"missing title", ServiceInput{DurationHours: 1}, "title"},
		{"markup only title", ServiceInput{Title: "<b></b>", DurationHours: 1}, "title"},
		{"zero duration", ServiceInput{Title: "Маникюр"}, "duration_hours"},
		{"negative duration", ServiceInput{Title: "Маникюр", DurationHours: -1}, "duration_hours"},
		{"negative order", ServiceInput{Title: "Маникюр", DurationHours: 1, Order: -1}, "order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			err := svc.Validate(&in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, FieldErrors(err), tt.field)
		})
	}
}

func TestCatalogService_SanitizesDescription(t *testing.T) {
	svc := NewCatalogService(nil, nil, testutil.TestLoggerSilent())
	in := ServiceInput{
		Title:         "Педикюр <script>alert(1)</script>",
		Description:   "<p>Уход <b>за стопами</b></p>",
		DurationHours: 2,
	}
	require.NoError(t, svc.Validate(&in))
	assert.Equal(t, "Педикюр", in.Title)
	assert.Equal(t, "Уход за стопами", in.Description)
}

func TestCatalogService_CRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, testutil.TestLoggerSilent())
	ctx := context.Background()

	created, err := svc.Create(ctx, ServiceInput{
		Title:         "Маникюр",
		Price:         "от 1500 ₽",
		DurationHours: 1.5,
		Order:         2,
		IsActive:      true,
	})
	require.NoError(t, err)
	assert.False(t, created.ImageUrl.Valid)

	_, err = svc.Create(ctx, ServiceInput{Title: "Снятие", DurationHours: 0.5, Order: 1})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Снятие", all[0].Title, "ordered by position")

	updated, err := svc.Update(ctx, created.ID, ServiceInput{
		Title:         "Маникюр с покрытием",
		DurationHours: 2,
		ImageURL:      "/uploads/x.jpg",
		IsActive:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Маникюр с покрытием", updated.Title)
	assert.Equal(t, "/uploads/x.jpg", updated.ImageUrl.String)

	require.NoError(t, svc.SetActive(ctx, created.ID, false))
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_MissingRows(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, testutil.TestLoggerSilent())
	ctx := context.Background()

	_, err := svc.Update(ctx, 999, ServiceInput{Title: "x", DurationHours: 1})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.SetActive(ctx, 999, true), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 999), ErrNotFound)
}

func TestCatalogService_InvalidInputWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db, nil, testutil.TestLoggerSilent())
	ctx := context.Background()

	_, err := svc.Create(ctx, ServiceInput{Title: "", DurationHours: 0})
	require.Error(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
