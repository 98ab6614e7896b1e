// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/nailstudio/internal/auth"
	"github.com/olegiv/nailstudio/internal/model"
)

// SeedOptions controls what Seed creates.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

// Seed creates the default settings row when none exists and, when
// credentials are given, an admin account. Existing rows are never changed
// except that a seeded email whose role is not admin is promoted.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	queries := New(db)

	if err := seedSiteSettings(ctx, queries); err != nil {
		return err
	}

	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return nil
	}
	return seedAdmin(ctx, queries, opts.AdminEmail, opts.AdminPassword)
}

func seedSiteSettings(ctx context.Context, queries *Queries) error {
	_, err := queries.GetSiteSettings(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking site settings: %w", err)
	}

	now := time.Now()
	if _, err := queries.CreateSiteSettings(ctx, CreateSiteSettingsParams{
		HeroTitle:    model.DefaultHeroTitle,
		HeroSubtitle: model.DefaultHeroSubtitle,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return fmt.Errorf("creating site settings: %w", err)
	}

	slog.Info("created default site settings")
	return nil
}

func seedAdmin(ctx context.Context, queries *Queries, email, password string) error {
	user, err := queries.GetUserByEmail(ctx, email)
	if err == nil {
		if model.ParseRole(user.Role).IsAdmin() {
			return nil
		}
		if err := queries.UpdateUserRole(ctx, UpdateUserRoleParams{
			Role:      string(model.RoleAdmin),
			UpdatedAt: time.Now(),
			ID:        user.ID,
		}); err != nil {
			return fmt.Errorf("promoting admin user: %w", err)
		}
		slog.Info("promoted existing user to admin", "user_id", user.ID)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err = queries.CreateUser(ctx, CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         string(model.RoleAdmin),
		Name:         "Administrator",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created admin user", "id", user.ID, "email", user.Email)
	return nil
}
