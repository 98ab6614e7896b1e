// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/store"
)

// ContentService is the read side used by the public pages. Backend errors
// are logged and degraded to empty results so the landing page always
// renders.
type ContentService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewContentService creates a ContentService.
func NewContentService(db *sql.DB, logger *slog.Logger) *ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentService{queries: store.New(db), logger: logger}
}

// ListActiveServices returns active services ordered by position.
func (s *ContentService) ListActiveServices(ctx context.Context) []store.Service {
	services, err := s.queries.ListActiveServices(ctx)
	if err != nil {
		s.logger.Error("failed to list active services", "error", err)
		return []store.Service{}
	}
	return services
}

// GetSiteSettings returns the settings row, or nil when none exists or the
// read fails. Only real failures are logged.
func (s *ContentService) GetSiteSettings(ctx context.Context) *store.SiteSetting {
	settings, err := s.queries.GetSiteSettings(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("failed to load site settings", "error", err)
		}
		return nil
	}
	return &settings
}

// ListImages returns images ordered by position, filtered by section when
// section is non-empty.
func (s *ContentService) ListImages(ctx context.Context, section string) []store.Image {
	var (
		images []store.Image
		err    error
	)
	if section == "" {
		images, err = s.queries.ListImages(ctx)
	} else {
		images, err = s.queries.ListImagesBySection(ctx, section)
	}
	if err != nil {
		s.logger.Error("failed to list images", "error", err, "section", section)
		return []store.Image{}
	}
	return images
}

// ResolveRole looks up the role of a user. Unlike the list reads it returns
// the error: the access gate must fail closed.
func (s *ContentService) ResolveRole(ctx context.Context, userID int64) (model.Role, error) {
	role, err := s.queries.GetUserRole(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("resolving role for user %d: %w", userID, err)
	}
	return model.ParseRole(role), nil
}
