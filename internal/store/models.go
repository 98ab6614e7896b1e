// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type ContactSubmission struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Service       string    `json:"service"`
	DesiredDate   string    `json:"desired_date"`
	Message       string    `json:"message"`
	Source        string    `json:"source"`
	Client        string    `json:"client"`
	IpAddress     string    `json:"ip_address"`
	Delivered     bool      `json:"delivered"`
	DeliveryError string    `json:"delivery_error"`
	CreatedAt     time.Time `json:"created_at"`
}

type Event struct {
	ID        int64         `json:"id"`
	Level     string        `json:"level"`
	Category  string        `json:"category"`
	Message   string        `json:"message"`
	UserID    sql.NullInt64 `json:"user_id"`
	Metadata  string        `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}

type Image struct {
	ID         int64     `json:"id"`
	AltText    string    `json:"alt_text"`
	ImageUrl   string    `json:"image_url"`
	StorageKey string    `json:"storage_key"`
	Section    string    `json:"section"`
	Position   int64     `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Service struct {
	ID            int64          `json:"id"`
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

type SiteSetting struct {
	ID                   int64          `json:"id"`
	HeroTitle            string         `json:"hero_title"`
	HeroSubtitle         string         `json:"hero_subtitle"`
	BackgroundGifUrl     sql.NullString `json:"background_gif_url"`
	BackgroundStorageKey string         `json:"background_storage_key"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	Name         string       `json:"name"`
	LastLoginAt  sql.NullTime `json:"last_login_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
