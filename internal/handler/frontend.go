// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/seo"
	"github.com/olegiv/nailstudio/internal/service"
)

// priceCurrency is the ISO code used in structured data offers.
const priceCurrency = "RUB"

// HomeData is the landing page.
type HomeData struct {
	*service.LandingData
	Profile Profile
}

// PrivacyData is the privacy policy page.
type PrivacyData struct {
	Body    template.HTML
	Profile Profile
}

// FrontendConfig configures the public pages.
type FrontendConfig struct {
	Site    seo.SiteConfig
	Profile Profile
	// Privacy is the Markdown source of the privacy policy.
	Privacy []byte
	// NoIndex turns robots.txt into a blanket disallow.
	NoIndex bool
}

// FrontendHandler serves the public pages.
type FrontendHandler struct {
	pages       *service.PageService
	renderer    *render.Renderer
	cfg         FrontendConfig
	privacyHTML template.HTML
	started     time.Time
}

// NewFrontendHandler creates a new FrontendHandler. The privacy policy is
// converted once here.
func NewFrontendHandler(pages *service.PageService, renderer *render.Renderer, cfg FrontendConfig) (*FrontendHandler, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table, extension.Linkify))

	var buf bytes.Buffer
	if err := md.Convert(cfg.Privacy, &buf); err != nil {
		return nil, fmt.Errorf("converting privacy policy: %w", err)
	}

	return &FrontendHandler{
		pages:    pages,
		renderer: renderer,
		cfg:      cfg,
		// The Markdown is embedded at build time, not user input.
		privacyHTML: template.HTML(buf.String()), //nolint:gosec
		started:     time.Now(),
	}, nil
}

// Home renders the landing page.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := h.pages.Landing(r.Context())

	// Title, description and preview image follow the editable hero.
	site := h.cfg.Site
	site.SiteName = data.HeroTitle
	site.Description = data.HeroSubtitle
	if data.BackgroundURL != "" {
		site.DefaultImage = data.BackgroundURL
	}

	jsonLD := []template.JS{seo.BuildBusinessSchema(h.cfg.Profile.Business(), &h.cfg.Site)}
	if len(data.Services) > 0 {
		offers := make([]seo.Offer, 0, len(data.Services))
		for _, s := range data.Services {
			offers = append(offers, seo.Offer{Name: s.Title, Description: s.Description, Price: s.Price})
		}
		jsonLD = append(jsonLD, seo.BuildServicesSchema(offers, priceCurrency))
	}

	renderOrError(w, r, h.renderer, "public/home", render.TemplateData{
		Title:  data.HeroTitle,
		Meta:   seo.BuildMeta(nil, &site),
		JSONLD: jsonLD,
		Data:   HomeData{LandingData: data, Profile: h.cfg.Profile},
	})
}

// Privacy renders the privacy policy.
func (h *FrontendHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	renderOrError(w, r, h.renderer, "public/privacy", render.TemplateData{
		Title: "Политика конфиденциальности",
		Meta: seo.BuildMeta(&seo.PageData{
			Title:       "Политика конфиденциальности",
			Description: "Политика конфиденциальности и обработки персональных данных",
			Path:        RoutePrivacy,
		}, &h.cfg.Site),
		Data: PrivacyData{Body: h.privacyHTML, Profile: h.cfg.Profile},
	})
}

// Robots serves robots.txt.
func (h *FrontendHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(HeaderContentType, "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.cfg.Site.SiteURL,
		DisallowAll: h.cfg.NoIndex,
	})))
}

// Sitemap serves sitemap.xml. The landing page changes with the admin
// content, so its lastmod is the newest of the startup time and the latest
// service or image update.
func (h *FrontendHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	data := h.pages.Landing(r.Context())
	lastMod := h.started
	for _, s := range data.Services {
		if s.UpdatedAt.After(lastMod) {
			lastMod = s.UpdatedAt
		}
	}
	for _, img := range data.Gallery {
		if img.UpdatedAt.After(lastMod) {
			lastMod = img.UpdatedAt
		}
	}

	b := seo.NewSitemapBuilder(h.cfg.Site.SiteURL)
	b.AddHomepage(lastMod)
	b.AddPath(RoutePrivacy, h.started, seo.ChangeFreqYearly, "0.3")

	out, err := b.Build()
	if err != nil {
		logAndInternalError(w, "failed to build sitemap", "error", err)
		return
	}
	w.Header().Set(HeaderContentType, "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// NotFound renders the 404 page.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.RenderStatus(w, r, http.StatusNotFound, "public/404", render.TemplateData{
		Title: "Страница не найдена",
		Meta: seo.BuildMeta(&seo.PageData{
			Title:   "Страница не найдена",
			Path:    r.URL.Path,
			NoIndex: true,
		}, &h.cfg.Site),
		Data: HomeData{Profile: h.cfg.Profile},
	}); err != nil {
		slog.Error("failed to render 404 page", "error", err)
		http.NotFound(w, r)
	}
}
