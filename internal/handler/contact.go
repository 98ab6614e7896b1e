// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/nailstudio/internal/middleware"
	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/service"
)

// Messages shown by the landing page form.
const (
	MsgContactSent        = "Заявка отправлена! Скоро свяжусь с Вами для подтверждения записи."
	MsgContactFailed      = "Ошибка отправки. Попробуйте еще раз или свяжитесь напрямую."
	MsgContactInvalid     = "Ошибка валидации данных"
	MsgContactRateLimited = "Слишком много заявок. Попробуйте через минуту."
)

// ContactResponse is the JSON body returned to the landing page script.
type ContactResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ContactHandler accepts appointment requests from the landing page.
type ContactHandler struct {
	contact  *service.ContactService
	renderer *render.Renderer
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contact *service.ContactService, renderer *render.Renderer) *ContactHandler {
	return &ContactHandler{contact: contact, renderer: renderer}
}

// Submit handles POST /contact. Script callers get JSON; a plain form post
// is redirected back to the form with a flash message.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, http.StatusBadRequest, ContactResponse{Message: MsgContactInvalid})
		return
	}

	req := service.ContactRequest{
		Name:      r.PostFormValue("name"),
		Phone:     r.PostFormValue("phone"),
		Service:   r.PostFormValue("service"),
		Date:      r.PostFormValue("date"),
		Message:   r.PostFormValue("message"),
		Source:    model.ContactSourceForm,
		UserAgent: r.UserAgent(),
		IPAddress: middleware.ClientIP(r),
	}

	id, err := h.contact.Submit(r.Context(), req)
	switch {
	case err == nil:
		h.respond(w, r, http.StatusOK, ContactResponse{Success: true, Message: MsgContactSent})
	case errors.Is(err, service.ErrValidation):
		h.respond(w, r, http.StatusUnprocessableEntity, ContactResponse{
			Message: MsgContactInvalid,
			Errors:  service.FieldErrors(err),
		})
	default:
		// Already stored when id != 0; the admin can resend it.
		slog.Error("contact submission failed", "error", err, "submission_id", id)
		h.respond(w, r, http.StatusBadGateway, ContactResponse{Message: MsgContactFailed})
	}
}

func (h *ContactHandler) respond(w http.ResponseWriter, r *http.Request, status int, resp ContactResponse) {
	if wantsJSON(r) {
		writeJSON(w, status, resp)
		return
	}

	if resp.Success {
		flashSuccess(w, r, h.renderer, redirectContactAnchor, resp.Message)
		return
	}
	msg := resp.Message
	if len(resp.Errors) > 0 {
		msg = (&service.ValidationError{Fields: resp.Errors}).Error()
	}
	flashError(w, r, h.renderer, redirectContactAnchor, msg)
}
