// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const imageColumns = `id, alt_text, image_url, storage_key, section, position, created_at, updated_at`

func scanImage(row interface{ Scan(...any) error }) (Image, error) {
	var i Image
	err := row.Scan(
		&i.ID,
		&i.AltText,
		&i.ImageUrl,
		&i.StorageKey,
		&i.Section,
		&i.Position,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) listImages(ctx context.Context, query string, args ...any) ([]Image, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Image{}
	for rows.Next() {
		i, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countImages = `-- name: CountImages :one
SELECT COUNT(*) FROM images
`

func (q *Queries) CountImages(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countImages)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createImage = `-- name: CreateImage :one
INSERT INTO images (alt_text, image_url, storage_key, section, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + imageColumns

type CreateImageParams struct {
	AltText    string    `json:"alt_text"`
	ImageUrl   string    `json:"image_url"`
	StorageKey string    `json:"storage_key"`
	Section    string    `json:"section"`
	Position   int64     `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (q *Queries) CreateImage(ctx context.Context, arg CreateImageParams) (Image, error) {
	row := q.db.QueryRowContext(ctx, createImage,
		arg.AltText,
		arg.ImageUrl,
		arg.StorageKey,
		arg.Section,
		arg.Position,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanImage(row)
}

const deleteImage = `-- name: DeleteImage :execrows
DELETE FROM images WHERE id = ?
`

func (q *Queries) DeleteImage(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteImage, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getImageByID = `-- name: GetImageByID :one
SELECT ` + imageColumns + ` FROM images WHERE id = ?
`

func (q *Queries) GetImageByID(ctx context.Context, id int64) (Image, error) {
	return scanImage(q.db.QueryRowContext(ctx, getImageByID, id))
}

const getMaxImagePosition = `-- name: GetMaxImagePosition :one
SELECT CAST(COALESCE(MAX(position), -1) AS INTEGER) FROM images
`

// GetMaxImagePosition returns -1 when no images exist.
func (q *Queries) GetMaxImagePosition(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, getMaxImagePosition)
	var position int64
	err := row.Scan(&position)
	return position, err
}

const listImages = `-- name: ListImages :many
SELECT ` + imageColumns + ` FROM images
ORDER BY position ASC
`

func (q *Queries) ListImages(ctx context.Context) ([]Image, error) {
	return q.listImages(ctx, listImages)
}

const listImagesBySection = `-- name: ListImagesBySection :many
SELECT ` + imageColumns + ` FROM images
WHERE section = ?
ORDER BY position ASC
`

func (q *Queries) ListImagesBySection(ctx context.Context, section string) ([]Image, error) {
	return q.listImages(ctx, listImagesBySection, section)
}

const updateImage = `-- name: UpdateImage :one
UPDATE images SET alt_text = ?, section = ?, position = ?, updated_at = ?
WHERE id = ?
RETURNING ` + imageColumns

type UpdateImageParams struct {
	AltText   string    `json:"alt_text"`
	Section   string    `json:"section"`
	Position  int64     `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        int64     `json:"id"`
}

func (q *Queries) UpdateImage(ctx context.Context, arg UpdateImageParams) (Image, error) {
	row := q.db.QueryRowContext(ctx, updateImage,
		arg.AltText,
		arg.Section,
		arg.Position,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanImage(row)
}
