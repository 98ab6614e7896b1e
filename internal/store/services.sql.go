// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const serviceColumns = `id, title, description, price, duration_hours, image_url, position, is_active, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (Service, error) {
	var i Service
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Price,
		&i.DurationHours,
		&i.ImageUrl,
		&i.Position,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func (q *Queries) listServices(ctx context.Context, query string, args ...any) ([]Service, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []Service{}
	for rows.Next() {
		i, err := scanService(rows)
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

const countServices = `-- name: CountServices :one
SELECT COUNT(*) FROM services
`

func (q *Queries) CountServices(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countServices)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createService = `-- name: CreateService :one
INSERT INTO services (title, description, price, duration_hours, image_url, position, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + serviceColumns

type CreateServiceParams struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Price         string         `json:"price"`
	DurationHours float64        `json:"duration_hours"`
	ImageUrl      sql.NullString `json:"image_url"`
	Position      int64          `json:"position"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (Service, error) {
	row := q.db.QueryRowContext(ctx, createService,
		arg.Title,
		arg.Description,
		arg.Price,
		arg.DurationHours,
		arg.ImageUrl,
		arg.Position,
		arg.IsActive,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanService(row)
}

const deleteService = `-- name: DeleteService :execrows
DELETE FROM services WHERE id = ?
`

func (q *Queries) DeleteService(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteService, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getServiceByID = `-- name: GetServiceByID :one
SELECT ` + serviceColumns + ` FROM services WHERE id = ?
`

func (q *Queries) GetServiceByID(ctx context.Context, id int64) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx, getServiceByID, id))
}

const listActiveServices = `-- name: ListActiveServices :many
SELECT ` + serviceColumns + ` FROM services
WHERE is_active = 1
ORDER BY position ASC
`

func (q *Queries) ListActiveServices(ctx context.Context) ([]Service, error) {
	return q.listServices(ctx, listActiveServices)
}

const listServices = `-- name: ListServices :many
SELECT ` + serviceColumns + ` FROM services
ORDER BY position ASC
`

func (q *Queries) ListServices(ctx context.Context) ([]Service, error) {
	return q.listServices(ctx, listServices)
}

const setServiceActive = `-- name: SetServiceActive :execrows
UPDATE services SET is_active = ?, updated_at = ? WHERE id = ?
`

type SetServiceActiveParams struct {
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        int64     `json:"id"`
}

func (q *Queries) SetServiceActive(ctx context.Context, arg SetServiceActiveParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, setServiceActive, arg.IsActive, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateService = `-- name: UpdateService :one
UPDATE services
SET title = ?, description = ?, price = ?, duration_hours = ?, image_url = ?, position = ?, is_active = ?, updated_at = ?
WHERE id = ?
RETURNING ` + serviceColumns

type UpdateServiceParams struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Price         string         `json:"price"`
	DurationHours float64        `json:"duration_hours"`
	ImageUrl      sql.NullString `json:"image_url"`
	Position      int64          `json:"position"`
	IsActive      bool           `json:"is_active"`
	UpdatedAt     time.Time      `json:"updated_at"`
	ID            int64          `json:"id"`
}

func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) (Service, error) {
	row := q.db.QueryRowContext(ctx, updateService,
		arg.Title,
		arg.Description,
		arg.Price,
		arg.DurationHours,
		arg.ImageUrl,
		arg.Position,
		arg.IsActive,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanService(row)
}
