// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/service"
	"github.com/olegiv/nailstudio/internal/telegram"
)

// SubmissionsData is the stored appointment requests tab.
type SubmissionsData struct {
	Page       *service.SubmissionPage
	Pagination AdminPagination
	BotEnabled bool
}

// SubmissionsHandler lists stored contact requests and lets the admin resend
// the ones the bot never received.
type SubmissionsHandler struct {
	contact    *service.ContactService
	events     *service.EventService
	renderer   *render.Renderer
	botEnabled bool
}

// NewSubmissionsHandler creates a new SubmissionsHandler.
func NewSubmissionsHandler(contact *service.ContactService, events *service.EventService, renderer *render.Renderer, botEnabled bool) *SubmissionsHandler {
	return &SubmissionsHandler{contact: contact, events: events, renderer: renderer, botEnabled: botEnabled}
}

// List shows one page of submissions, newest first.
func (h *SubmissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := h.contact.List(r.Context(), page)
	if err != nil {
		logAndInternalError(w, "failed to list submissions", "error", err)
		return
	}

	renderOrError(w, r, h.renderer, "admin/submissions", render.TemplateData{
		Title: "Заявки",
		Data: SubmissionsData{
			Page:       result,
			Pagination: BuildAdminPagination(result.Page, result.Total, service.SubmissionsPerPage, redirectAdminSubmissions, r.URL.Query()),
			BotEnabled: h.botEnabled,
		},
		ActiveTab: TabSubmissions,
	})
}

// Resend delivers a stored submission to the bot again.
func (h *SubmissionsHandler) Resend(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminSubmissions)
	if !ok {
		return
	}

	if err := h.contact.Resend(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			flashError(w, r, h.renderer, redirectAdminSubmissions, msgNotFound)
		case errors.Is(err, telegram.ErrNotConfigured):
			flashError(w, r, h.renderer, redirectAdminSubmissions, telegram.ErrNotConfigured.Error())
		default:
			slog.Warn("submission resend failed", "error", err, "submission_id", id)
			flashError(w, r, h.renderer, redirectAdminSubmissions, "Не удалось отправить заявку в Telegram")
		}
		return
	}

	logContentEvent(r, h.events, "Submission resent", map[string]any{"submission_id": id})
	flashSuccess(w, r, h.renderer, redirectAdminSubmissions, "Заявка отправлена в Telegram")
}

// Delete removes a stored submission.
func (h *SubmissionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminSubmissions)
	if !ok {
		return
	}

	if err := h.contact.Delete(r.Context(), id); err != nil {
		mutationError(w, r, h.renderer, redirectAdminSubmissions, "failed to delete submission", msgDeleteFailed, err, "submission_id", id)
		return
	}

	logContentEvent(r, h.events, "Submission deleted", map[string]any{"submission_id": id})
	flashSuccess(w, r, h.renderer, redirectAdminSubmissions, "Заявка удалена")
}
