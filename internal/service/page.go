// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/nailstudio/internal/cache"
	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/store"
	"github.com/olegiv/nailstudio/internal/util"
)

// LandingCacheTTL is how long composed landing data is served from cache.
const LandingCacheTTL = 30 * time.Second

const landingCacheKey = "page:landing"

// LandingData is everything the public landing page renders.
type LandingData struct {
	HeroTitle     string             `json:"hero_title"`
	HeroSubtitle  string             `json:"hero_subtitle"`
	BackgroundURL string             `json:"background_url"`
	Settings      *store.SiteSetting `json:"settings"`
	Services      []store.Service    `json:"services"`
	Gallery       []store.Image      `json:"gallery"`
}

// PageService composes landing page data and caches the result.
type PageService struct {
	content *ContentService
	cache   *cache.TypedCache[LandingData]
	logger  *slog.Logger
}

// NewPageService creates a PageService. A nil cache disables caching.
func NewPageService(content *ContentService, c cache.Cache, logger *slog.Logger) *PageService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &PageService{content: content, logger: logger}
	if c != nil {
		s.cache = cache.NewTypedCache[LandingData](c, LandingCacheTTL)
	}
	return s
}

// Landing returns the composed landing data. It never fails: reads degrade to
// empty values and the hero falls back to the defaults.
func (s *PageService) Landing(ctx context.Context) *LandingData {
	if s.cache == nil {
		return s.compose(ctx)
	}
	data, err := s.cache.GetOrSet(ctx, landingCacheKey, func(ctx context.Context) (*LandingData, error) {
		return s.compose(ctx), nil
	})
	if err != nil {
		s.logger.Warn("landing cache failed", "error", err)
		return s.compose(ctx)
	}
	return data
}

// Invalidate drops the cached landing data. Admin mutations call it.
func (s *PageService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, landingCacheKey); err != nil {
		s.logger.Warn("failed to invalidate landing cache", "error", err)
	}
}

// compose loads services, settings and images concurrently. The loaders
// never return errors, so the group only provides the join.
func (s *PageService) compose(ctx context.Context) *LandingData {
	var (
		services []store.Service
		settings *store.SiteSetting
		images   []store.Image
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		services = s.content.ListActiveServices(gctx)
		return nil
	})
	g.Go(func() error {
		settings = s.content.GetSiteSettings(gctx)
		return nil
	})
	g.Go(func() error {
		images = s.content.ListImages(gctx, "")
		return nil
	})
	_ = g.Wait()

	data := &LandingData{
		HeroTitle:    model.DefaultHeroTitle,
		HeroSubtitle: model.DefaultHeroSubtitle,
		Settings:     settings,
		Services:     services,
		Gallery:      images,
	}
	if settings != nil {
		if t := strings.TrimSpace(settings.HeroTitle); t != "" {
			data.HeroTitle = t
		}
		if st := strings.TrimSpace(settings.HeroSubtitle); st != "" {
			data.HeroSubtitle = st
		}
		data.BackgroundURL = util.StringOr(settings.BackgroundGifUrl, "")
	}
	return data
}
