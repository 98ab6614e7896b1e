// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds meta tags, structured data, robots.txt and the sitemap
// for the public pages.
package seo

import (
	"strings"
)

// Meta holds all SEO meta tag data for a page.
type Meta struct {
	Title         string // <title>
	Description   string
	Keywords      string
	Canonical     string
	OGTitle       string
	OGDescription string
	OGImage       string // absolute
	OGType        string
	OGSiteName    string
	OGURL         string
	OGLocale      string
	Robots        string // index,follow / noindex,nofollow

	// YandexVerification is the Webmaster verification code, empty to omit.
	YandexVerification string
}

// PageData describes a page other than the landing page.
type PageData struct {
	Title       string
	Description string
	Path        string // e.g. "/privacy"
	Image       string
	NoIndex     bool
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName           string
	SiteURL            string
	Description        string
	Keywords           []string
	DefaultImage       string
	Locale             string
	YandexVerification string
}

// BuildMeta creates the meta tags for a page. A nil page yields the landing
// page tags built from the site settings.
func BuildMeta(page *PageData, site *SiteConfig) *Meta {
	siteURL := strings.TrimSuffix(site.SiteURL, "/")
	locale := site.Locale
	if locale == "" {
		locale = "ru_RU"
	}

	meta := &Meta{
		OGType:             "website",
		OGSiteName:         site.SiteName,
		OGLocale:           locale,
		Keywords:           strings.Join(site.Keywords, ", "),
		YandexVerification: site.YandexVerification,
	}

	if page == nil {
		meta.Title = site.SiteName
		meta.OGTitle = site.SiteName
		meta.Description = site.Description
		meta.OGDescription = site.Description
		meta.Canonical = siteURL + "/"
		meta.OGURL = meta.Canonical
		meta.Robots = "index,follow"
		meta.OGImage = makeAbsoluteURL(site.DefaultImage, siteURL)
		return meta
	}

	meta.OGType = "article"
	meta.OGTitle = page.Title
	meta.Title = page.Title
	if site.SiteName != "" && page.Title != "" {
		meta.Title = page.Title + " | " + site.SiteName
	}

	meta.Description = page.Description
	if meta.Description == "" {
		meta.Description = site.Description
	}
	meta.OGDescription = meta.Description

	if page.Image != "" {
		meta.OGImage = makeAbsoluteURL(page.Image, siteURL)
	} else {
		meta.OGImage = makeAbsoluteURL(site.DefaultImage, siteURL)
	}

	meta.Canonical = siteURL + "/" + strings.TrimPrefix(page.Path, "/")
	meta.OGURL = meta.Canonical
	meta.Robots = buildRobotsDirective(page.NoIndex, false)

	return meta
}

// buildRobotsDirective creates the robots meta content from noindex/nofollow flags.
func buildRobotsDirective(noIndex, noFollow bool) string {
	parts := []string{"index", "follow"}
	if noIndex {
		parts[0] = "noindex"
	}
	if noFollow {
		parts[1] = "nofollow"
	}
	return strings.Join(parts, ",")
}

// makeAbsoluteURL ensures a URL is absolute by prepending site URL if needed.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
