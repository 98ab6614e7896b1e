// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/seo"
	"github.com/olegiv/nailstudio/internal/service"
	"github.com/olegiv/nailstudio/internal/storage"
	"github.com/olegiv/nailstudio/internal/testutil"
	"github.com/olegiv/nailstudio/web"
)

// fakeSender records bot messages and fails while err is set.
type fakeSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeSender) Send(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeSender) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// testEnv holds a migrated database, a memory session store, the real
// templates and every service wired the way main does it.
type testEnv struct {
	db       *sql.DB
	sm       *scs.SessionManager
	renderer *render.Renderer
	bucket   *storage.Bucket
	sender   *fakeSender

	events   *service.EventService
	content  *service.ContentService
	pages    *service.PageService
	catalog  *service.CatalogService
	gallery  *service.GalleryService
	settings *service.SettingsService
	contact  *service.ContactService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	sm := scs.New()
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates fs: %v", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
		Site:           render.SiteInfo{Name: "AVDEEVA", URL: "https://example.com", MetrikaID: "106364517"},
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	bucket, err := storage.NewBucket(t.TempDir())
	if err != nil {
		t.Fatalf("NewBucket: %v", err)
	}

	logger := testutil.TestLoggerSilent()
	sender := &fakeSender{}
	content := service.NewContentService(db, logger)
	pages := service.NewPageService(content, nil, logger)

	return &testEnv{
		db:       db,
		sm:       sm,
		renderer: renderer,
		bucket:   bucket,
		sender:   sender,
		events:   service.NewEventService(db, logger),
		content:  content,
		pages:    pages,
		catalog:  service.NewCatalogService(db, pages, logger),
		gallery:  service.NewGalleryService(db, bucket, nil, pages, logger),
		settings: service.NewSettingsService(db, bucket, nil, pages, logger),
		contact:  service.NewContactService(db, sender, nil, logger),
	}
}

// router wraps routes in the session middleware and adds /_flash, which
// pops the pending flash message as the response body.
func (e *testEnv) router(routes func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(e.sm.LoadAndSave)
	r.Get("/_flash", func(w http.ResponseWriter, req *http.Request) {
		_, _ = io.WriteString(w, e.sm.PopString(req.Context(), render.SessionKeyFlash))
	})
	routes(r)
	return r
}

func (e *testEnv) frontend(t *testing.T) *FrontendHandler {
	t.Helper()
	h, err := NewFrontendHandler(e.pages, e.renderer, FrontendConfig{
		Site: seo.SiteConfig{
			SiteName:    "AVDEEVA",
			SiteURL:     "https://example.com",
			Description: "Ногтевая студия",
			Locale:      "ru_RU",
		},
		Profile: DefaultProfile(),
		Privacy: web.Privacy,
	})
	if err != nil {
		t.Fatalf("NewFrontendHandler: %v", err)
	}
	return h
}

// client replays cookies between requests like a browser.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, h: h, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	return c.do(req)
}

// flash returns and clears the pending flash message.
func (c *client) flash() string {
	return c.get("/_flash").Body.String()
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}
