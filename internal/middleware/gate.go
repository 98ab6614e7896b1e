// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/store"
)

// Admin paths the gate knows about.
const (
	AdminPrefix    = "/admin"
	AdminLoginPath = "/admin/login"
	AdminHomePath  = "/admin/dashboard"
)

// Bypass markers. A request carrying either one, or a path with a dot in it,
// is passed through without a session lookup.
const (
	BypassHeader     = "X-Middleware-Ignore"
	BypassQueryParam = "_rsc"
)

// SessionUserResolver returns the user bound to the request's session, or
// nil when there is none.
type SessionUserResolver interface {
	CurrentUser(r *http.Request) *store.User
}

// RoleResolver looks up a user's role.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID int64) (model.Role, error)
}

// SessionRevoker signs the request's session out.
type SessionRevoker interface {
	Revoke(r *http.Request) error
}

// GateConfig wires the admin gate.
type GateConfig struct {
	Users   SessionUserResolver
	Roles   RoleResolver
	Revoker SessionRevoker
	Logger  *slog.Logger
}

// AdminGate protects everything under AdminPrefix. Anonymous visitors are
// sent to the login page, signed-in visitors are sent away from it, and a
// signed-in user who is not an admin (or whose role cannot be read) is
// signed out. Admins continue with the user in the request context.
func AdminGate(cfg GateConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypassGate(r) || !isAdminPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			user := cfg.Users.CurrentUser(r)

			if r.URL.Path == AdminLoginPath {
				if user != nil {
					http.Redirect(w, r, AdminHomePath, http.StatusSeeOther)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if user == nil {
				http.Redirect(w, r, AdminLoginPath, http.StatusSeeOther)
				return
			}

			role, err := cfg.Roles.ResolveRole(r.Context(), user.ID)
			if err != nil || !role.IsAdmin() {
				if err != nil {
					logger.Error("role lookup failed", "error", err, "user_id", user.ID, "path", r.URL.Path)
				} else {
					logger.Warn("non-admin user denied", "user_id", user.ID, "role", role, "path", r.URL.Path,
						"category", model.EventCategoryAuth)
				}
				if rerr := cfg.Revoker.Revoke(r); rerr != nil {
					logger.Error("failed to revoke session", "error", rerr, "user_id", user.ID)
				}
				http.Redirect(w, r, AdminLoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user)))
		})
	}
}

func bypassGate(r *http.Request) bool {
	if r.Header.Get(BypassHeader) != "" {
		return true
	}
	if r.URL.Query().Has(BypassQueryParam) {
		return true
	}
	return strings.Contains(r.URL.Path, ".")
}

func isAdminPath(p string) bool {
	return strings.HasPrefix(p, AdminPrefix)
}

// RequireAdminUser rejects requests that reached an admin handler without
// the gate placing an admin in the context, for example through a bypass
// marker. It is mounted inside the admin route group.
func RequireAdminUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r) == nil {
			http.Redirect(w, r, AdminLoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionUsers resolves users from the scs session and the users table.
type SessionUsers struct {
	sm      *scs.SessionManager
	queries *store.Queries
	logger  *slog.Logger
}

// NewSessionUsers creates a SessionUsers.
func NewSessionUsers(sm *scs.SessionManager, queries *store.Queries, logger *slog.Logger) *SessionUsers {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionUsers{sm: sm, queries: queries, logger: logger}
}

// CurrentUser implements SessionUserResolver. A session pointing at a
// deleted user counts as no user.
func (s *SessionUsers) CurrentUser(r *http.Request) *store.User {
	userID := s.sm.GetInt64(r.Context(), SessionKeyUserID)
	if userID == 0 {
		return nil
	}
	user, err := s.queries.GetUserByID(r.Context(), userID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Debug("session user not found", "user_id", userID, "error", err)
		}
		return nil
	}
	return &user
}

// Revoke implements SessionRevoker.
func (s *SessionUsers) Revoke(r *http.Request) error {
	return s.sm.Destroy(r.Context())
}
