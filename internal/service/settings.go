// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/nailstudio/internal/imaging"
	"github.com/olegiv/nailstudio/internal/store"
)

// MaxBackgroundUpload is the largest accepted background file.
const MaxBackgroundUpload = 10 << 20

const backgroundFolder = "settings/background"

var backgroundTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

const msgBackgroundType = "Поддерживаются только JPG, PNG и WebP"

// SettingsInput is the hero text form.
type SettingsInput struct {
	HeroTitle    string
	HeroSubtitle string
}

// SettingsService edits the site settings singleton.
type SettingsService struct {
	queries   *store.Queries
	objects   ObjectStore
	processor *imaging.Processor
	pages     *PageService
	policy    *bluemonday.Policy
	logger    *slog.Logger
}

// NewSettingsService creates a SettingsService. pages may be nil.
func NewSettingsService(db *sql.DB, objects ObjectStore, processor *imaging.Processor, pages *PageService, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	if processor == nil {
		processor = imaging.NewProcessor(imaging.DefaultMaxWidth, imaging.DefaultJPEGQuality)
	}
	return &SettingsService{
		queries:   store.New(db),
		objects:   objects,
		processor: processor,
		pages:     pages,
		policy:    bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// Get returns the settings row or nil when none exists.
func (s *SettingsService) Get(ctx context.Context) (*store.SiteSetting, error) {
	settings, err := s.queries.GetSiteSettings(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading site settings: %w", err)
	}
	return &settings, nil
}

// ensure returns the settings row, creating an empty one on first save.
func (s *SettingsService) ensure(ctx context.Context) (store.SiteSetting, error) {
	settings, err := s.queries.GetSiteSettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.SiteSetting{}, fmt.Errorf("loading site settings: %w", err)
	}
	now := time.Now()
	settings, err = s.queries.CreateSiteSettings(ctx, store.CreateSiteSettingsParams{CreatedAt: now, UpdatedAt: now})
	if err != nil {
		return store.SiteSetting{}, fmt.Errorf("creating site settings: %w", err)
	}
	return settings, nil
}

// UpdateText saves the hero title and subtitle.
func (s *SettingsService) UpdateText(ctx context.Context, in SettingsInput) (*store.SiteSetting, error) {
	title := plainText(s.policy, in.HeroTitle)
	subtitle := plainText(s.policy, in.HeroSubtitle)

	ve := &ValidationError{}
	if utf8.RuneCountInString(title) > 200 {
		ve.add("hero_title", "Заголовок слишком длинный")
	}
	if utf8.RuneCountInString(subtitle) > 500 {
		ve.add("hero_subtitle", "Подзаголовок слишком длинный")
	}
	if !ve.empty() {
		return nil, ve
	}

	current, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.queries.UpdateSiteText(ctx, store.UpdateSiteTextParams{
		HeroTitle:    title,
		HeroSubtitle: subtitle,
		UpdatedAt:    time.Now(),
		ID:           current.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("updating site text: %w", err)
	}
	s.invalidate(ctx)
	return &settings, nil
}

// UploadBackground replaces the hero background. The picture is oriented,
// capped to the processor width and stored as JPEG. The previous object is
// deleted once the row points at the new one.
func (s *SettingsService) UploadBackground(ctx context.Context, up ImageUpload) (*store.SiteSetting, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(up.ContentType, ";", 2)[0]))
	if !backgroundTypes[ct] {
		return nil, &UploadError{Err: ErrUnsupportedType, Message: msgBackgroundType}
	}
	if up.Size > MaxBackgroundUpload {
		return nil, &UploadError{Err: ErrFileTooLarge, Message: tooLargeMessage(up.Size, MaxBackgroundUpload)}
	}
	data, err := io.ReadAll(io.LimitReader(up.Body, MaxBackgroundUpload+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxBackgroundUpload {
		return nil, &UploadError{Err: ErrFileTooLarge, Message: tooLargeMessage(int64(len(data)), MaxBackgroundUpload)}
	}
	switch imaging.DetectFormat(data) {
	case imaging.FormatJPEG, imaging.FormatPNG, imaging.FormatWebP:
	default:
		return nil, &UploadError{Err: ErrUnsupportedType, Message: msgBackgroundType}
	}

	res, err := s.processor.ToJPEG(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("processing background: %w", err)
	}

	current, err := s.ensure(ctx)
	if err != nil {
		return nil, err
	}

	key := path.Join(backgroundFolder, uuid.NewString()+"."+res.Ext())
	url, err := s.objects.Put(ctx, key, res.Data)
	if err != nil {
		return nil, fmt.Errorf("storing background: %w", err)
	}

	settings, err := s.queries.UpdateSiteBackground(ctx, store.UpdateSiteBackgroundParams{
		BackgroundGifUrl:     sql.NullString{String: url, Valid: true},
		BackgroundStorageKey: key,
		UpdatedAt:            time.Now(),
		ID:                   current.ID,
	})
	if err != nil {
		s.removeObject(ctx, key)
		return nil, fmt.Errorf("updating background: %w", err)
	}

	if current.BackgroundStorageKey != "" && current.BackgroundStorageKey != key {
		s.removeObject(ctx, current.BackgroundStorageKey)
	}
	s.logger.Info("background updated", "key", key, "width", res.Width, "height", res.Height)
	s.invalidate(ctx)
	return &settings, nil
}

// RemoveBackground clears the background and deletes the stored object.
func (s *SettingsService) RemoveBackground(ctx context.Context) error {
	current, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}

	if _, err := s.queries.UpdateSiteBackground(ctx, store.UpdateSiteBackgroundParams{
		UpdatedAt: time.Now(),
		ID:        current.ID,
	}); err != nil {
		return fmt.Errorf("clearing background: %w", err)
	}
	if current.BackgroundStorageKey != "" {
		s.removeObject(ctx, current.BackgroundStorageKey)
	}
	s.invalidate(ctx)
	return nil
}

func (s *SettingsService) removeObject(ctx context.Context, key string) {
	if err := s.objects.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete stored object", "error", err, "key", key)
	}
}

func (s *SettingsService) invalidate(ctx context.Context) {
	if s.pages != nil {
		s.pages.Invalidate(ctx)
	}
}
