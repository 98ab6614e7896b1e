// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/service"
	"github.com/olegiv/nailstudio/internal/store"
)

// ServiceFormData is the create/edit form for one service.
type ServiceFormData struct {
	Service *store.Service
	Input   service.ServiceInput
	Errors  map[string][]string
	IsEdit  bool
	Action  string
}

// ServicesHandler manages the price list.
type ServicesHandler struct {
	catalog  *service.CatalogService
	events   *service.EventService
	renderer *render.Renderer
}

// NewServicesHandler creates a new ServicesHandler.
func NewServicesHandler(catalog *service.CatalogService, events *service.EventService, renderer *render.Renderer) *ServicesHandler {
	return &ServicesHandler{catalog: catalog, events: events, renderer: renderer}
}

// List shows every service, active or not, in display order.
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.List(r.Context())
	if err != nil {
		slog.Error("failed to list services", "error", err)
		h.renderer.SetFlash(r, msgLoadFailed, flashTypeError)
	}

	renderOrError(w, r, h.renderer, "admin/services", render.TemplateData{
		Title:     "Управление услугами",
		Data:      services,
		ActiveTab: TabServices,
	})
}

// New renders an empty service form.
func (h *ServicesHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, ServiceFormData{
		Input: service.ServiceInput{
			DurationHours: model.DefaultDurationHours,
			Order:         model.DefaultServiceOrder,
			IsActive:      true,
		},
		Action: redirectAdminServices,
	})
}

// Create handles the new service form.
func (h *ServicesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminServices) {
		return
	}

	in := serviceInputFromForm(r)
	svc, err := h.catalog.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.renderForm(w, r, http.StatusUnprocessableEntity, ServiceFormData{
				Input:  in,
				Errors: service.FieldErrors(err),
				Action: redirectAdminServices,
			})
			return
		}
		mutationError(w, r, h.renderer, redirectAdminServices, "failed to create service", msgSaveFailed, err)
		return
	}

	h.logContent(r, "Service created", map[string]any{"service_id": svc.ID, "title": svc.Title})
	flashSuccess(w, r, h.renderer, redirectAdminServices, "Услуга добавлена")
}

// Edit renders the form for an existing service.
func (h *ServicesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminServices)
	if !ok {
		return
	}
	svc, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminServices, "услуга", id,
		func(id int64) (*store.Service, error) { return h.catalog.Get(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, http.StatusOK, ServiceFormData{
		Service: svc,
		Input:   serviceInputFromModel(svc),
		IsEdit:  true,
		Action:  fmt.Sprintf("%s/%d", redirectAdminServices, svc.ID),
	})
}

// Update handles the edit form.
func (h *ServicesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminServices)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminServices) {
		return
	}

	in := serviceInputFromForm(r)
	svc, err := h.catalog.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			h.renderForm(w, r, http.StatusUnprocessableEntity, ServiceFormData{
				Service: &store.Service{ID: id},
				Input:   in,
				Errors:  service.FieldErrors(err),
				IsEdit:  true,
				Action:  fmt.Sprintf("%s/%d", redirectAdminServices, id),
			})
			return
		}
		mutationError(w, r, h.renderer, redirectAdminServices, "failed to update service", msgSaveFailed, err, "service_id", id)
		return
	}

	h.logContent(r, "Service updated", map[string]any{"service_id": svc.ID, "title": svc.Title})
	flashSuccess(w, r, h.renderer, redirectAdminServices, "Услуга сохранена")
}

// Toggle flips a service between active and inactive. The target state comes
// from the form so that a repeated click is idempotent.
func (h *ServicesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminServices)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminServices) {
		return
	}

	active := formBool(r, "active")
	if err := h.catalog.SetActive(r.Context(), id, active); err != nil {
		mutationError(w, r, h.renderer, redirectAdminServices, "failed to toggle service", msgSaveFailed, err, "service_id", id)
		return
	}

	h.logContent(r, "Service visibility changed", map[string]any{"service_id": id, "active": active})
	msg := "Услуга скрыта"
	if active {
		msg = "Услуга опубликована"
	}
	flashSuccess(w, r, h.renderer, redirectAdminServices, msg)
}

// Delete removes a service.
func (h *ServicesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminServices)
	if !ok {
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		mutationError(w, r, h.renderer, redirectAdminServices, "failed to delete service", msgDeleteFailed, err, "service_id", id)
		return
	}

	h.logContent(r, "Service deleted", map[string]any{"service_id": id})
	flashSuccess(w, r, h.renderer, redirectAdminServices, "Услуга удалена")
}

func (h *ServicesHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, data ServiceFormData) {
	title := "Новая услуга"
	if data.IsEdit {
		title = "Редактирование услуги"
	}
	if err := h.renderer.RenderStatus(w, r, status, "admin/service_form", render.TemplateData{
		Title:     title,
		Data:      data,
		ActiveTab: TabServices,
	}); err != nil {
		logAndInternalError(w, "failed to render service form", "error", err)
	}
}

func (h *ServicesHandler) logContent(r *http.Request, message string, meta map[string]any) {
	logContentEvent(r, h.events, message, meta)
}

func serviceInputFromForm(r *http.Request) service.ServiceInput {
	return service.ServiceInput{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Price:         r.FormValue("price"),
		DurationHours: formFloat(r, "duration_hours", -1),
		ImageURL:      r.FormValue("image_url"),
		Order:         formInt(r, "order", -1),
		IsActive:      formBool(r, "is_active"),
	}
}

func serviceInputFromModel(s *store.Service) service.ServiceInput {
	return service.ServiceInput{
		Title:         s.Title,
		Description:   s.Description,
		Price:         s.Price,
		DurationHours: s.DurationHours,
		ImageURL:      s.ImageUrl.String,
		Order:         s.Position,
		IsActive:      s.IsActive,
	}
}
