// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/service"
	"github.com/olegiv/nailstudio/internal/store"
)

// multipartSlack covers form fields and part headers around the file.
const multipartSlack = 1 << 20

// ImagesData is the image manager tab.
type ImagesData struct {
	Images   []store.Image
	Sections []string
	MaxMB    int
}

// ImageFormData is the edit form for one image.
type ImageFormData struct {
	Image    *store.Image
	Input    service.ImageInput
	Errors   map[string][]string
	Sections []string
}

// ImagesHandler manages gallery images.
type ImagesHandler struct {
	gallery  *service.GalleryService
	events   *service.EventService
	renderer *render.Renderer
}

// NewImagesHandler creates a new ImagesHandler.
func NewImagesHandler(gallery *service.GalleryService, events *service.EventService, renderer *render.Renderer) *ImagesHandler {
	return &ImagesHandler{gallery: gallery, events: events, renderer: renderer}
}

// List shows all images in display order together with the upload form.
func (h *ImagesHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.gallery.List(r.Context())
	if err != nil {
		slog.Error("failed to list images", "error", err)
		h.renderer.SetFlash(r, msgLoadFailed, flashTypeError)
	}

	renderOrError(w, r, h.renderer, "admin/images", render.TemplateData{
		Title: "Изображения",
		Data: ImagesData{
			Images:   images,
			Sections: model.KnownSections,
			MaxMB:    service.MaxGalleryUpload >> 20,
		},
		ActiveTab: TabImages,
	})
}

// Upload handles the multipart upload form.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	up, file, ok := readUpload(w, r, h.renderer, redirectAdminImages, service.MaxGalleryUpload)
	if !ok {
		return
	}
	defer func() { _ = file.Close() }()

	up.AltText = r.FormValue("alt_text")
	up.Section = r.FormValue("section")

	img, err := h.gallery.Upload(r.Context(), up)
	if err != nil {
		mutationError(w, r, h.renderer, redirectAdminImages, "failed to upload image", "Ошибка загрузки изображения", err,
			"filename", up.Filename)
		return
	}

	logContentEvent(r, h.events, "Image uploaded", map[string]any{"image_id": img.ID, "section": img.Section})
	flashSuccess(w, r, h.renderer, redirectAdminImages, "Изображение загружено")
}

// Edit renders the metadata form for one image.
func (h *ImagesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminImages)
	if !ok {
		return
	}
	img, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminImages, "изображение", id,
		func(id int64) (*store.Image, error) { return h.gallery.Get(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, http.StatusOK, ImageFormData{
		Image: img,
		Input: service.ImageInput{AltText: img.AltText, Section: img.Section, Order: img.Position},
	})
}

// Update saves alt text, section and position.
func (h *ImagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminImages)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminImages) {
		return
	}

	in := service.ImageInput{
		AltText: r.FormValue("alt_text"),
		Section: r.FormValue("section"),
		Order:   formInt(r, "order", -1),
	}
	img, err := h.gallery.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			current, getErr := h.gallery.Get(r.Context(), id)
			if getErr != nil {
				current = &store.Image{ID: id}
			}
			h.renderForm(w, r, http.StatusUnprocessableEntity, ImageFormData{
				Image:  current,
				Input:  in,
				Errors: service.FieldErrors(err),
			})
			return
		}
		mutationError(w, r, h.renderer, redirectAdminImages, "failed to update image", msgSaveFailed, err, "image_id", id)
		return
	}

	logContentEvent(r, h.events, "Image updated", map[string]any{"image_id": img.ID})
	flashSuccess(w, r, h.renderer, redirectAdminImages, "Изображение сохранено")
}

// Delete removes an image and its stored file.
func (h *ImagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, h.renderer, redirectAdminImages)
	if !ok {
		return
	}

	if err := h.gallery.Delete(r.Context(), id); err != nil {
		mutationError(w, r, h.renderer, redirectAdminImages, "failed to delete image", msgDeleteFailed, err, "image_id", id)
		return
	}

	logContentEvent(r, h.events, "Image deleted", map[string]any{"image_id": id})
	flashSuccess(w, r, h.renderer, redirectAdminImages, "Изображение удалено")
}

func (h *ImagesHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, data ImageFormData) {
	data.Sections = model.KnownSections
	if err := h.renderer.RenderStatus(w, r, status, "admin/image_form", render.TemplateData{
		Title:     "Редактирование изображения",
		Data:      data,
		ActiveTab: TabImages,
	}); err != nil {
		logAndInternalError(w, "failed to render image form", "error", err)
	}
}

// readUpload parses a multipart form with a body cap of limit plus slack and
// returns the "file" part. On failure it redirects with a flash message.
func readUpload(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string, limit int64) (service.ImageUpload, multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartSlack)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			flashError(w, r, renderer, redirectURL, fmt.Sprintf("Файл слишком большой (макс. %dMB)", limit>>20))
			return service.ImageUpload{}, nil, false
		}
		flashError(w, r, renderer, redirectURL, msgInvalidForm)
		return service.ImageUpload{}, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		flashError(w, r, renderer, redirectURL, "Выберите файл")
		return service.ImageUpload{}, nil, false
	}

	return service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(HeaderContentType),
		Size:        header.Size,
		Body:        file,
	}, file, true
}
