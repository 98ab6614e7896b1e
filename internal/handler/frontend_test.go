// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/service"
)

func frontendRouter(t *testing.T, env *testEnv) http.Handler {
	t.Helper()
	h := env.frontend(t)
	return env.router(func(r chi.Router) {
		r.Get(RouteRoot, h.Home)
		r.Get(RoutePrivacy, h.Privacy)
		r.Get(RouteRobots, h.Robots)
		r.Get(RouteSitemap, h.Sitemap)
		r.NotFound(h.NotFound)
	})
}

func TestHome_Defaults(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(t, frontendRouter(t, env))

	rec := c.get("/")
	mustStatus(t, rec, http.StatusOK)
	body := rec.Body.String()

	assert.Contains(t, body, model.DefaultHeroTitle)
	assert.Contains(t, body, `"@type":"NailSalon"`)
	assert.NotContains(t, body, `"@type":"ItemList"`, "no services, no offer list")
	assert.Contains(t, body, `id="contact-form"`)
	assert.Contains(t, body, `name="gorilla.csrf.Token"`)
}

func TestHome_ShowsActiveServicesAndHero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.Create(ctx, service.ServiceInput{Title: "Педикюр SMART", Price: "3000₽", DurationHours: 2, IsActive: true})
	require.NoError(t, err)
	_, err = env.catalog.Create(ctx, service.ServiceInput{Title: "Секретная услуга", DurationHours: 1})
	require.NoError(t, err)
	_, err = env.settings.UpdateText(ctx, service.SettingsInput{HeroTitle: "Студия Анастасии", HeroSubtitle: "Маникюр в Самаре"})
	require.NoError(t, err)

	c := newClient(t, frontendRouter(t, env))
	rec := c.get("/")
	mustStatus(t, rec, http.StatusOK)
	body := rec.Body.String()

	assert.Contains(t, body, "Педикюр SMART")
	assert.NotContains(t, body, "Секретная услуга")
	assert.Contains(t, body, "Студия Анастасии")
	assert.Contains(t, body, `content="Маникюр в Самаре"`)
	assert.Contains(t, body, `"@type":"ItemList"`)
	assert.Contains(t, body, `"priceCurrency":"RUB"`)
}

func TestPrivacy(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(t, frontendRouter(t, env))

	rec := c.get(RoutePrivacy)
	mustStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Политика конфиденциальности</h1>")
	assert.Contains(t, body, "<table>", "tables extension renders the requisites")
}

func TestRobots(t *testing.T) {
	tests := []struct {
		name    string
		noIndex bool
		want    []string
		notWant []string
	}{
		{"production", false, []string{"Disallow: /admin", "Allow: /", "Sitemap: https://example.com/sitemap.xml"}, nil},
		{"no index", true, []string{"Disallow: /\n"}, []string{"Allow: /"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			h := env.frontend(t)
			h.cfg.NoIndex = tt.noIndex
			c := newClient(t, env.router(func(r chi.Router) { r.Get(RouteRobots, h.Robots) }))

			rec := c.get(RouteRobots)
			mustStatus(t, rec, http.StatusOK)
			assert.True(t, strings.HasPrefix(rec.Header().Get(HeaderContentType), "text/plain"))
			for _, w := range tt.want {
				assert.Contains(t, rec.Body.String(), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, rec.Body.String(), w)
			}
		})
	}
}

func TestSitemap(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(t, frontendRouter(t, env))

	rec := c.get(RouteSitemap)
	mustStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Header().Get(HeaderContentType), "application/xml")
	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://example.com/</loc>")
	assert.Contains(t, body, "<loc>https://example.com/privacy</loc>")
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(t, frontendRouter(t, env))

	rec := c.get("/no-such-page")
	mustStatus(t, rec, http.StatusNotFound)
	assert.Contains(t, rec.Body.String(), "404")
	assert.Contains(t, rec.Body.String(), "noindex")
}
