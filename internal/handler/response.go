// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/service"
)

// Messages shared by the admin handlers.
const (
	msgInvalidForm    = "Некорректные данные формы"
	msgInvalidID      = "Некорректный идентификатор"
	msgSaveFailed     = "Ошибка при сохранении"
	msgDeleteFailed   = "Ошибка при удалении"
	msgLoadFailed     = "Ошибка загрузки данных"
	msgNotFound       = "Запись не найдена"
	msgInternalServer = "Внутренняя ошибка сервера"
)

// flashAndRedirect sets a flash message and redirects with 303 See Other.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, flashTypeError)
}

func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, flashTypeSuccess)
}

// parseFormOrRedirect parses the request form. On failure it redirects with
// an error flash and returns false.
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, renderer, redirectURL, msgInvalidForm)
		return false
	}
	return true
}

// logAndHTTPError logs an error and writes a plain-text HTTP error.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, msgInternalServer, http.StatusInternalServerError, logMsg, args...)
}

// renderOrError renders a template and turns a template failure into a 500.
func renderOrError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, name string, data render.TemplateData) {
	if err := renderer.Render(w, r, name, data); err != nil {
		logAndInternalError(w, "failed to render template", "template", name, "error", err)
	}
}

// parseIDParam reads the {id} URL parameter. On failure it redirects with an
// error flash and returns false.
func parseIDParam(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		flashError(w, r, renderer, redirectURL, msgInvalidID)
		return 0, false
	}
	return id, true
}

// requireEntityWithRedirect fetches an entity by ID. On error it sets a flash
// message and redirects, returning false.
//
// Example usage:
//
//	svc, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminServices, "услуга", id,
//	    func(id int64) (*store.Service, error) { return h.catalog.Get(r.Context(), id) })
func requireEntityWithRedirect[T any](
	w http.ResponseWriter,
	r *http.Request,
	renderer *render.Renderer,
	redirectURL string,
	entityName string,
	id int64,
	queryFn func(id int64) (T, error),
) (T, bool) {
	var zero T
	entity, err := queryFn(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			flashError(w, r, renderer, redirectURL, "Не найдено: "+entityName)
		} else {
			slog.Error("failed to get entity", "entity", entityName, "error", err, "id", id)
			flashError(w, r, renderer, redirectURL, msgLoadFailed)
		}
		return zero, false
	}
	return entity, true
}

// mutationError flashes the outcome of a failed admin mutation. Validation
// and upload errors carry their own message. Anything else is logged with
// logMsg and shown as fallback.
func mutationError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL, logMsg, fallback string, err error, args ...any) {
	if errors.Is(err, service.ErrNotFound) {
		flashError(w, r, renderer, redirectURL, msgNotFound)
		return
	}
	msg := service.UserMessage(err, "")
	if msg == "" {
		slog.Error(logMsg, append([]any{"error", err}, args...)...)
		msg = fallback
	}
	flashError(w, r, renderer, redirectURL, msg)
}
