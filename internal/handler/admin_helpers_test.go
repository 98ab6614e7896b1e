// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
)

// adminCRUDRouter mounts the content tabs without the gate; the gate has its
// own tests.
func adminCRUDRouter(env *testEnv, botEnabled bool) http.Handler {
	services := NewServicesHandler(env.catalog, env.events, env.renderer)
	images := NewImagesHandler(env.gallery, env.events, env.renderer)
	settings := NewSettingsHandler(env.settings, env.events, env.renderer)
	submissions := NewSubmissionsHandler(env.contact, env.events, env.renderer, botEnabled)

	return env.router(func(r chi.Router) {
		r.Route(RouteAdmin, func(r chi.Router) {
			r.Route(RouteServices, func(r chi.Router) {
				r.Get(RouteRoot, services.List)
				r.Post(RouteRoot, services.Create)
				r.Get(RouteSuffixNew, services.New)
				r.Get(RouteParamID+RouteSuffixEdit, services.Edit)
				r.Post(RouteParamID, services.Update)
				r.Post(RouteParamID+RouteSuffixToggle, services.Toggle)
				r.Post(RouteParamID+RouteSuffixDelete, services.Delete)
			})
			r.Route(RouteImages, func(r chi.Router) {
				r.Get(RouteRoot, images.List)
				r.Post(RouteRoot, images.Upload)
				r.Get(RouteParamID+RouteSuffixEdit, images.Edit)
				r.Post(RouteParamID, images.Update)
				r.Post(RouteParamID+RouteSuffixDelete, images.Delete)
			})
			r.Route(RouteSettings, func(r chi.Router) {
				r.Get(RouteRoot, settings.Show)
				r.Post(RouteSuffixText, settings.UpdateText)
				r.Post(RouteSuffixBackground, settings.UploadBackground)
				r.Post(RouteSuffixBackground+RouteSuffixDelete, settings.RemoveBackground)
			})
			r.Route(RouteSubmission, func(r chi.Router) {
				r.Get(RouteRoot, submissions.List)
				r.Post(RouteParamID+RouteSuffixResend, submissions.Resend)
				r.Post(RouteParamID+RouteSuffixDelete, submissions.Delete)
			})
		})
	})
}

// postFile sends a multipart form with one "file" part.
func (c *client) postFile(path, filename, contentType string, data []byte, fields map[string]string) *httptest.ResponseRecorder {
	c.t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			c.t.Fatalf("WriteField: %v", err)
		}
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		h.Set(HeaderContentType, contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			c.t.Fatalf("CreatePart: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			c.t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		c.t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(HeaderContentType, mw.FormDataContentType())
	return c.do(req)
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}
