// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const submissionColumns = `id, name, phone, service, desired_date, message, source, client, ip_address, delivered, delivery_error, created_at`

func scanContactSubmission(row interface{ Scan(...any) error }) (ContactSubmission, error) {
	var i ContactSubmission
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Phone,
		&i.Service,
		&i.DesiredDate,
		&i.Message,
		&i.Source,
		&i.Client,
		&i.IpAddress,
		&i.Delivered,
		&i.DeliveryError,
		&i.CreatedAt,
	)
	return i, err
}

const countContactSubmissions = `-- name: CountContactSubmissions :one
SELECT COUNT(*) FROM contact_submissions
`

func (q *Queries) CountContactSubmissions(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countContactSubmissions)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countUndeliveredSubmissions = `-- name: CountUndeliveredSubmissions :one
SELECT COUNT(*) FROM contact_submissions WHERE delivered = 0
`

func (q *Queries) CountUndeliveredSubmissions(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countUndeliveredSubmissions)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createContactSubmission = `-- name: CreateContactSubmission :one
INSERT INTO contact_submissions (name, phone, service, desired_date, message, source, client, ip_address, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + submissionColumns

type CreateContactSubmissionParams struct {
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Service     string    `json:"service"`
	DesiredDate string    `json:"desired_date"`
	Message     string    `json:"message"`
	Source      string    `json:"source"`
	Client      string    `json:"client"`
	IpAddress   string    `json:"ip_address"`
	CreatedAt   time.Time `json:"created_at"`
}

func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, createContactSubmission,
		arg.Name,
		arg.Phone,
		arg.Service,
		arg.DesiredDate,
		arg.Message,
		arg.Source,
		arg.Client,
		arg.IpAddress,
		arg.CreatedAt,
	)
	return scanContactSubmission(row)
}

const deleteContactSubmission = `-- name: DeleteContactSubmission :execrows
DELETE FROM contact_submissions WHERE id = ?
`

func (q *Queries) DeleteContactSubmission(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteContactSubmission, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteContactSubmissionsBefore = `-- name: DeleteContactSubmissionsBefore :execrows
DELETE FROM contact_submissions WHERE created_at < ?
`

func (q *Queries) DeleteContactSubmissionsBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteContactSubmissionsBefore, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getContactSubmission = `-- name: GetContactSubmission :one
SELECT ` + submissionColumns + ` FROM contact_submissions WHERE id = ?
`

func (q *Queries) GetContactSubmission(ctx context.Context, id int64) (ContactSubmission, error) {
	return scanContactSubmission(q.db.QueryRowContext(ctx, getContactSubmission, id))
}

const listContactSubmissions = `-- name: ListContactSubmissions :many
SELECT ` + submissionColumns + ` FROM contact_submissions
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

type ListContactSubmissionsParams struct {
	Limit  int64 `json:"limit"`
	Offset int64 `json:"offset"`
}

func (q *Queries) ListContactSubmissions(ctx context.Context, arg ListContactSubmissionsParams) ([]ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listContactSubmissions, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	items := []ContactSubmission{}
	for rows.Next() {
		i, err := scanContactSubmission(rows)
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

const markSubmissionDelivery = `-- name: MarkSubmissionDelivery :exec
UPDATE contact_submissions SET delivered = ?, delivery_error = ? WHERE id = ?
`

type MarkSubmissionDeliveryParams struct {
	Delivered     bool   `json:"delivered"`
	DeliveryError string `json:"delivery_error"`
	ID            int64  `json:"id"`
}

func (q *Queries) MarkSubmissionDelivery(ctx context.Context, arg MarkSubmissionDeliveryParams) error {
	_, err := q.db.ExecContext(ctx, markSubmissionDelivery, arg.Delivered, arg.DeliveryError, arg.ID)
	return err
}
