// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const siteSettingColumns = `id, hero_title, hero_subtitle, background_gif_url, background_storage_key, created_at, updated_at`

func scanSiteSetting(row interface{ Scan(...any) error }) (SiteSetting, error) {
	var i SiteSetting
	err := row.Scan(
		&i.ID,
		&i.HeroTitle,
		&i.HeroSubtitle,
		&i.BackgroundGifUrl,
		&i.BackgroundStorageKey,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createSiteSettings = `-- name: CreateSiteSettings :one
INSERT INTO site_settings (hero_title, hero_subtitle, background_gif_url, background_storage_key, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + siteSettingColumns

type CreateSiteSettingsParams struct {
	HeroTitle            string         `json:"hero_title"`
	HeroSubtitle         string         `json:"hero_subtitle"`
	BackgroundGifUrl     sql.NullString `json:"background_gif_url"`
	BackgroundStorageKey string         `json:"background_storage_key"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func (q *Queries) CreateSiteSettings(ctx context.Context, arg CreateSiteSettingsParams) (SiteSetting, error) {
	row := q.db.QueryRowContext(ctx, createSiteSettings,
		arg.HeroTitle,
		arg.HeroSubtitle,
		arg.BackgroundGifUrl,
		arg.BackgroundStorageKey,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanSiteSetting(row)
}

const getSiteSettings = `-- name: GetSiteSettings :one
SELECT ` + siteSettingColumns + ` FROM site_settings
ORDER BY id ASC
LIMIT 1
`

// GetSiteSettings returns sql.ErrNoRows when the singleton row is absent.
func (q *Queries) GetSiteSettings(ctx context.Context) (SiteSetting, error) {
	return scanSiteSetting(q.db.QueryRowContext(ctx, getSiteSettings))
}

const updateSiteBackground = `-- name: UpdateSiteBackground :one
UPDATE site_settings SET background_gif_url = ?, background_storage_key = ?, updated_at = ?
WHERE id = ?
RETURNING ` + siteSettingColumns

type UpdateSiteBackgroundParams struct {
	BackgroundGifUrl     sql.NullString `json:"background_gif_url"`
	BackgroundStorageKey string         `json:"background_storage_key"`
	UpdatedAt            time.Time      `json:"updated_at"`
	ID                   int64          `json:"id"`
}

func (q *Queries) UpdateSiteBackground(ctx context.Context, arg UpdateSiteBackgroundParams) (SiteSetting, error) {
	row := q.db.QueryRowContext(ctx, updateSiteBackground,
		arg.BackgroundGifUrl,
		arg.BackgroundStorageKey,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanSiteSetting(row)
}

const updateSiteText = `-- name: UpdateSiteText :one
UPDATE site_settings SET hero_title = ?, hero_subtitle = ?, updated_at = ?
WHERE id = ?
RETURNING ` + siteSettingColumns

type UpdateSiteTextParams struct {
	HeroTitle    string    `json:"hero_title"`
	HeroSubtitle string    `json:"hero_subtitle"`
	UpdatedAt    time.Time `json:"updated_at"`
	ID           int64     `json:"id"`
}

func (q *Queries) UpdateSiteText(ctx context.Context, arg UpdateSiteTextParams) (SiteSetting, error) {
	row := q.db.QueryRowContext(ctx, updateSiteText,
		arg.HeroTitle,
		arg.HeroSubtitle,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanSiteSetting(row)
}
