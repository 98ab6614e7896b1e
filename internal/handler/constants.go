// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot       = "/"
	RoutePrivacy    = "/privacy"
	RouteContact    = "/contact"
	RouteRobots     = "/robots.txt"
	RouteSitemap    = "/sitemap.xml"
	RouteHealth     = "/health"
	RouteLive       = "/health/live"
	RouteReady      = "/health/ready"
	RouteStatic     = "/static/*"
	RouteUploads    = "/uploads/*"
	RouteAdmin      = "/admin"
	RouteLogin      = "/login"
	RouteLogout     = "/logout"
	RouteDashboard  = "/dashboard"
	RouteServices   = "/services"
	RouteImages     = "/images"
	RouteSettings   = "/settings"
	RouteSubmission = "/submissions"
	RouteJobs       = "/jobs"

	RouteParamID          = "/{id}"
	RouteParamName        = "/{name}"
	RouteSuffixNew        = "/new"
	RouteSuffixEdit       = "/edit"
	RouteSuffixRun        = "/run"
	RouteSuffixToggle     = "/toggle"
	RouteSuffixDelete     = "/delete"
	RouteSuffixResend     = "/resend"
	RouteSuffixText       = "/text"
	RouteSuffixBackground = "/background"
)

const (
	redirectAdmin            = "/admin"
	redirectLogin            = redirectAdmin + RouteLogin
	redirectDashboard        = redirectAdmin + RouteDashboard
	redirectAdminServices    = redirectAdmin + RouteServices
	redirectAdminImages      = redirectAdmin + RouteImages
	redirectAdminSettings    = redirectAdmin + RouteSettings
	redirectAdminSubmissions = redirectAdmin + RouteSubmission
	redirectContactAnchor    = "/#contact"
)

// Dashboard tabs.
const (
	TabOverview    = "overview"
	TabServices    = "services"
	TabImages      = "images"
	TabSettings    = "settings"
	TabSubmissions = "submissions"
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"

// Flash types understood by the templates.
const (
	flashTypeSuccess = "success"
	flashTypeError   = "error"
)
