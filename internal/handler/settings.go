// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/service"
	"github.com/olegiv/nailstudio/internal/store"
)

// SettingsData is the site settings tab.
type SettingsData struct {
	Settings        *store.SiteSetting
	HeroTitle       string
	HeroSubtitle    string
	BackgroundURL   string
	DefaultTitle    string
	DefaultSubtitle string
	MaxMB           int
}

// SettingsHandler edits hero text and the background picture.
type SettingsHandler struct {
	settings *service.SettingsService
	events   *service.EventService
	renderer *render.Renderer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService, events *service.EventService, renderer *render.Renderer) *SettingsHandler {
	return &SettingsHandler{settings: settings, events: events, renderer: renderer}
}

// Show renders the settings form.
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	current, err := h.settings.Get(r.Context())
	if err != nil {
		slog.Error("failed to load site settings", "error", err)
		h.renderer.SetFlash(r, msgLoadFailed, flashTypeError)
	}

	data := SettingsData{
		Settings:        current,
		DefaultTitle:    model.DefaultHeroTitle,
		DefaultSubtitle: model.DefaultHeroSubtitle,
		MaxMB:           service.MaxBackgroundUpload >> 20,
	}
	if current != nil {
		data.HeroTitle = current.HeroTitle
		data.HeroSubtitle = current.HeroSubtitle
		data.BackgroundURL = current.BackgroundGifUrl.String
	}

	renderOrError(w, r, h.renderer, "admin/settings", render.TemplateData{
		Title:     "Настройки сайта",
		Data:      data,
		ActiveTab: TabSettings,
	})
}

// UpdateText saves the hero title and subtitle.
func (h *SettingsHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSettings) {
		return
	}

	if _, err := h.settings.UpdateText(r.Context(), service.SettingsInput{
		HeroTitle:    r.FormValue("hero_title"),
		HeroSubtitle: r.FormValue("hero_subtitle"),
	}); err != nil {
		mutationError(w, r, h.renderer, redirectAdminSettings, "failed to update site text", msgSaveFailed, err)
		return
	}

	logContentEvent(r, h.events, "Site text updated", nil)
	flashSuccess(w, r, h.renderer, redirectAdminSettings, "Настройки сохранены")
}

// UploadBackground replaces the hero background picture.
func (h *SettingsHandler) UploadBackground(w http.ResponseWriter, r *http.Request) {
	up, file, ok := readUpload(w, r, h.renderer, redirectAdminSettings, service.MaxBackgroundUpload)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	saved, err := h.settings.UploadBackground(r.Context(), up)
	if err != nil {
		mutationError(w, r, h.renderer, redirectAdminSettings, "failed to upload background", "Ошибка загрузки изображения", err,
			"filename", up.Filename)
		return
	}

	logContentEvent(r, h.events, "Background updated", map[string]any{"key": saved.BackgroundStorageKey})
	flashSuccess(w, r, h.renderer, redirectAdminSettings, "Фоновое изображение обновлено")
}

// RemoveBackground clears the hero background picture.
func (h *SettingsHandler) RemoveBackground(w http.ResponseWriter, r *http.Request) {
	if err := h.settings.RemoveBackground(r.Context()); err != nil {
		mutationError(w, r, h.renderer, redirectAdminSettings, "failed to remove background", msgDeleteFailed, err)
		return
	}

	logContentEvent(r, h.events, "Background removed", nil)
	flashSuccess(w, r, h.renderer, redirectAdminSettings, "Фоновое изображение удалено")
}
