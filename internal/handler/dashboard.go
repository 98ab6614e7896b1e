// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/nailstudio/internal/middleware"
	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/scheduler"
	"github.com/olegiv/nailstudio/internal/service"
	"github.com/olegiv/nailstudio/internal/store"
)

// recentEventsLimit is how many events the overview tab lists.
const recentEventsLimit = 10

// JobRunner is the part of the scheduler the dashboard uses.
type JobRunner interface {
	List() []scheduler.JobInfo
	TriggerNow(name string) error
}

// DashboardStats holds the overview counters.
type DashboardStats struct {
	Services           int64
	Images             int64
	Submissions        int64
	Undelivered        int64
}

// DashboardData is the overview tab.
type DashboardData struct {
	Stats        DashboardStats
	RecentEvents []store.Event
	Jobs         []scheduler.JobInfo
	BotEnabled   bool
}

// DashboardHandler renders the admin overview.
type DashboardHandler struct {
	queries    *store.Queries
	renderer   *render.Renderer
	events     *service.EventService
	jobs       JobRunner
	botEnabled bool
}

// NewDashboardHandler creates a new DashboardHandler. jobs may be nil.
func NewDashboardHandler(db *sql.DB, renderer *render.Renderer, events *service.EventService, jobs JobRunner, botEnabled bool) *DashboardHandler {
	return &DashboardHandler{
		queries:    store.New(db),
		renderer:   renderer,
		events:     events,
		jobs:       jobs,
		botEnabled: botEnabled,
	}
}

// Root redirects /admin to the dashboard.
func (h *DashboardHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
}

// Dashboard renders the overview tab with counters and recent activity.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := DashboardStats{}

	if n, err := h.queries.CountServices(ctx); err != nil {
		slog.Error("failed to count services", "error", err)
	} else {
		stats.Services = n
	}

	if n, err := h.queries.CountImages(ctx); err != nil {
		slog.Error("failed to count images", "error", err)
	} else {
		stats.Images = n
	}

	if n, err := h.queries.CountContactSubmissions(ctx); err != nil {
		slog.Error("failed to count submissions", "error", err)
	} else {
		stats.Submissions = n
	}

	if n, err := h.queries.CountUndeliveredSubmissions(ctx); err != nil {
		slog.Error("failed to count undelivered submissions", "error", err)
	} else {
		stats.Undelivered = n
	}

	data := DashboardData{Stats: stats, BotEnabled: h.botEnabled}

	if h.events != nil {
		events, err := h.events.Recent(ctx, recentEventsLimit)
		if err != nil {
			slog.Error("failed to list recent events", "error", err)
		}
		data.RecentEvents = events
	}
	if h.jobs != nil {
		data.Jobs = h.jobs.List()
	}

	renderOrError(w, r, h.renderer, "admin/dashboard", render.TemplateData{
		Title:     "Обзор",
		Data:      data,
		ActiveTab: TabOverview,
	})
}

// RunJob triggers a scheduled job immediately.
// POST /admin/jobs/{name}/run
func (h *DashboardHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if h.jobs == nil {
		flashError(w, r, h.renderer, redirectDashboard, "Планировщик не запущен")
		return
	}

	if err := h.jobs.TriggerNow(name); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			flashError(w, r, h.renderer, redirectDashboard, "Задача не найдена")
			return
		}
		slog.Error("manual job run failed", "job", name, "error", err)
		flashError(w, r, h.renderer, redirectDashboard, "Задача завершилась с ошибкой: "+err.Error())
		return
	}

	slog.Info("job triggered manually", "job", name, "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectDashboard, "Задача выполнена")
}
