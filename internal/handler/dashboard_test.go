// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/nailstudio/internal/scheduler"
	"github.com/olegiv/nailstudio/internal/service"
)

type fakeJobs struct {
	ran []string
	err error
}

func (f *fakeJobs) List() []scheduler.JobInfo {
	return []scheduler.JobInfo{{Name: "purge_events", Description: "Очистка журнала", Schedule: "@daily"}}
}

func (f *fakeJobs) TriggerNow(name string) error {
	if name != "purge_events" {
		return scheduler.ErrJobNotFound
	}
	f.ran = append(f.ran, name)
	return f.err
}

func dashboardRouter(env *testEnv, jobs JobRunner, botEnabled bool) http.Handler {
	h := NewDashboardHandler(env.db, env.renderer, env.events, jobs, botEnabled)
	return env.router(func(r chi.Router) {
		r.Get(redirectAdmin, h.Root)
		r.Get(redirectDashboard, h.Dashboard)
		r.Post(redirectAdmin+RouteJobs+RouteParamName+RouteSuffixRun, h.RunJob)
	})
}

func TestDashboard_Counters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.Create(ctx, service.ServiceInput{Title: "Маникюр", DurationHours: 1, IsActive: true})
	require.NoError(t, err)
	storeUndelivered(t, env, "Анна")

	c := newClient(t, dashboardRouter(env, &fakeJobs{}, true))
	assertRedirect(t, c.get(redirectAdmin), redirectDashboard)

	rec := c.get(redirectDashboard)
	mustStatus(t, rec, http.StatusOK)
	body := rec.Body.String()
	assert.Contains(t, body, "purge_events")
	assert.NotContains(t, body, "Telegram-бот не настроен")
}

func TestDashboard_RunJob(t *testing.T) {
	tests := []struct {
		name string
		jobs *fakeJobs
		job  string
		want string
	}{
		{"runs", &fakeJobs{}, "purge_events", "Задача выполнена"},
		{"unknown", &fakeJobs{}, "nope", "Задача не найдена"},
		{"fails", &fakeJobs{err: errors.New("disk full")}, "purge_events", "Задача завершилась с ошибкой: disk full"},
		{"no scheduler", nil, "purge_events", "Планировщик не запущен"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			var jobs JobRunner
			if tt.jobs != nil {
				jobs = tt.jobs
			}
			c := newClient(t, dashboardRouter(env, jobs, true))

			rec := c.postForm(redirectAdmin+RouteJobs+"/"+tt.job+RouteSuffixRun, nil)
			assertRedirect(t, rec, redirectDashboard)
			assert.Equal(t, tt.want, c.flash())
		})
	}
}
