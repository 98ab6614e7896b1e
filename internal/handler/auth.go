// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/nailstudio/internal/auth"
	"github.com/olegiv/nailstudio/internal/middleware"
	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/service"
	"github.com/olegiv/nailstudio/internal/store"
)

// Login messages.
const (
	msgCredentialsRequired = "Введите email и пароль"
	msgInvalidCredentials  = "Неверный email или пароль"
	msgAdminOnly           = "Доступ только для администратора"
	msgLoginFailed         = "Ошибка входа"
	msgLoggedOut           = "Вы вышли из админ-панели"
	msgWelcome             = "Добро пожаловать!"
)

// AuthHandler handles admin sign-in and sign-out.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	events          *service.EventService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, events *service.EventService, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		events:          events,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Signed-in users never get here: the
// admin gate redirects them to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	renderOrError(w, r, h.renderer, "auth/login", render.TemplateData{
		Title: "Админ-панель",
	})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, msgCredentialsRequired)
		return
	}

	meta := map[string]any{"email": email, "ip": middleware.ClientIP(r)}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			h.logAuth(r, model.EventLevelWarning, "Login attempt on locked account", nil, meta)
			flashError(w, r, h.renderer, redirectLogin, fmt.Sprintf("Аккаунт временно заблокирован. Попробуйте через %s.", formatDuration(remaining)))
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Debug("login attempt for non-existent user", "email", email)
			h.logAuth(r, model.EventLevelWarning, "Login failed: user not found", nil, meta)
		} else {
			slog.Error("database error during login", "error", err)
		}
		auth.EqualizeTiming(password)
		h.failedAttempt(w, r, email, nil, meta)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err, "user_id", user.ID)
		flashError(w, r, h.renderer, redirectLogin, msgLoginFailed)
		return
	}
	if !valid {
		slog.Debug("invalid password attempt", "email", email)
		h.logAuth(r, model.EventLevelWarning, "Login failed: invalid password", &user.ID, meta)
		h.failedAttempt(w, r, email, &user.ID, meta)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// Only admins get a session at all; the gate would revoke any other.
	if !model.ParseRole(user.Role).IsAdmin() {
		h.logAuth(r, model.EventLevelWarning, "Login refused: not an admin", &user.ID, meta)
		flashError(w, r, h.renderer, redirectLogin, msgAdminOnly)
		return
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			} else {
				slog.Info("password re-hashed with updated parameters", "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: time.Now(), Valid: true},
		ID:          user.ID,
	}); err != nil {
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	// New token on privilege change.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	h.logAuth(r, model.EventLevelInfo, "User logged in", &user.ID, meta)

	flashSuccess(w, r, h.renderer, redirectDashboard, msgWelcome)
}

// failedAttempt records a failed login and flashes the matching message.
func (h *AuthHandler) failedAttempt(w http.ResponseWriter, r *http.Request, email string, userID *int64, meta map[string]any) {
	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
			h.logAuth(r, model.EventLevelWarning, "Account locked due to failed attempts", userID,
				map[string]any{"email": email, "duration": lockDuration.String()})
			flashError(w, r, h.renderer, redirectLogin, fmt.Sprintf("Слишком много попыток. Попробуйте через %s.", formatDuration(lockDuration)))
			return
		}
		if remaining := h.loginProtection.GetRemainingAttempts(email); remaining > 0 && remaining <= 3 {
			flashError(w, r, h.renderer, redirectLogin, fmt.Sprintf("%s. Осталось попыток: %d", msgInvalidCredentials, remaining))
			return
		}
	}
	flashError(w, r, h.renderer, redirectLogin, msgInvalidCredentials)
}

// Logout destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)
	if userID > 0 {
		h.logAuth(r, model.EventLevelInfo, "User logged out", &userID, nil)
	}

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}
	slog.Info("user logged out", "user_id", userID)

	// Destroy dropped the flash too; it is put into the fresh session.
	flashAndRedirect(w, r, h.renderer, redirectLogin, msgLoggedOut, "info")
}

func (h *AuthHandler) logAuth(r *http.Request, level, message string, userID *int64, meta map[string]any) {
	if h.events == nil {
		return
	}
	if err := h.events.LogAuthEvent(r.Context(), level, message, userID, meta); err != nil {
		slog.Error("failed to log auth event", "error", err)
	}
}

// formatDuration formats a lockout duration in Russian.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d сек.", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%d мин.", int(d.Minutes()))
	default:
		return fmt.Sprintf("%d ч.", int(d.Hours()))
	}
}
