// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/nailstudio/internal/cache"
	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/testutil"
)

func TestContentService_DegradesOnEmptyStore(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContentService(db, testutil.TestLoggerSilent())
	ctx := context.Background()

	assert.NotNil(t, svc.ListActiveServices(ctx))
	assert.Empty(t, svc.ListActiveServices(ctx))
	assert.Nil(t, svc.GetSiteSettings(ctx))
	assert.Empty(t, svc.ListImages(ctx, model.SectionHero))
}

func TestContentService_DegradesOnClosedDB(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContentService(db, testutil.TestLoggerSilent())
	require.NoError(t, db.Close())
	ctx := context.Background()

	assert.Empty(t, svc.ListActiveServices(ctx))
	assert.Nil(t, svc.GetSiteSettings(ctx))
	assert.Empty(t, svc.ListImages(ctx, ""))

	_, err := svc.ResolveRole(ctx, 1)
	assert.Error(t, err)
}

func TestContentService_ResolveRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContentService(db, testutil.TestLoggerSilent())
	ctx := context.Background()

	admin := testutil.CreateUser(t, db, "admin@example.com", "correct horse battery", "admin")
	user := testutil.CreateUser(t, db, "user@example.com", "correct horse battery", "user")

	role, err := svc.ResolveRole(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, role.IsAdmin())

	role, err = svc.ResolveRole(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, role.IsAdmin())

	_, err = svc.ResolveRole(ctx, 9999)
	assert.Error(t, err)
}

func TestPageService_LandingDefaults(t *testing.T) {
	db := setupTestDB(t)
	pages := NewPageService(NewContentService(db, testutil.TestLoggerSilent()), nil, testutil.TestLoggerSilent())

	data := pages.Landing(context.Background())
	assert.Equal(t, model.DefaultHeroTitle, data.HeroTitle)
	assert.Equal(t, model.DefaultHeroSubtitle, data.HeroSubtitle)
	assert.Empty(t, data.BackgroundURL)
	assert.Nil(t, data.Settings)
}

func TestPageService_InvalidatedByMutations(t *testing.T) {
	db := setupTestDB(t)
	logger := testutil.TestLoggerSilent()
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })

	pages := NewPageService(NewContentService(db, logger), mem, logger)
	catalog := NewCatalogService(db, pages, logger)
	settings := NewSettingsService(db, newCountingStore(t), nil, pages, logger)
	ctx := context.Background()

	assert.Empty(t, pages.Landing(ctx).Services)

	_, err := catalog.Create(ctx, ServiceInput{Title: "Маникюр", DurationHours: 1.5, IsActive: true})
	require.NoError(t, err)
	require.Len(t, pages.Landing(ctx).Services, 1)

	_, err = catalog.Create(ctx, ServiceInput{Title: "Скрытая", DurationHours: 1})
	require.NoError(t, err)
	assert.Len(t, pages.Landing(ctx).Services, 1, "inactive services stay hidden")

	_, err = settings.UpdateText(ctx, SettingsInput{HeroTitle: "Студия", HeroSubtitle: "  "})
	require.NoError(t, err)
	data := pages.Landing(ctx)
	assert.Equal(t, "Студия", data.HeroTitle)
	assert.Equal(t, model.DefaultHeroSubtitle, data.HeroSubtitle, "blank subtitle falls back")
}

func TestPageService_ServesFromCache(t *testing.T) {
	db := setupTestDB(t)
	logger := testutil.TestLoggerSilent()
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })

	pages := NewPageService(NewContentService(db, logger), mem, logger)
	ctx := context.Background()
	assert.Empty(t, pages.Landing(ctx).Services)

	// A write that bypasses the services is not visible until the entry expires.
	catalog := NewCatalogService(db, nil, logger)
	_, err := catalog.Create(ctx, ServiceInput{Title: "Маникюр", DurationHours: 1, IsActive: true})
	require.NoError(t, err)
	assert.Empty(t, pages.Landing(ctx).Services)

	pages.Invalidate(ctx)
	assert.Len(t, pages.Landing(ctx).Services, 1)
}
