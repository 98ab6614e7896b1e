// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/nailstudio/internal/service"
)

func TestServices_CreateEditToggleDelete(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(t, adminCRUDRouter(env, true))
	ctx := context.Background()

	rec := c.get(redirectAdminServices)
	mustStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Body.String(), "Услуг пока нет")

	mustStatus(t, c.get(redirectAdminServices+RouteSuffixNew), http.StatusOK)

	rec = c.postForm(redirectAdminServices, url.Values{
		"title":          {"Маникюр с покрытием"},
		"description":    {"Снятие, форма, покрытие"},
		"price":          {"2 500 ₽"},
		"duration_hours": {"1,5"},
		"order":          {"2"},
		"is_active":      {"on"},
	})
	assertRedirect(t, rec, redirectAdminServices)
	assert.Equal(t, "Услуга добавлена", c.flash())

	list, err := env.catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	svc := list[0]
	assert.Equal(t, "Маникюр с покрытием", svc.Title)
	assert.InDelta(t, 1.5, svc.DurationHours, 0.001)
	assert.True(t, svc.IsActive)

	rec = c.get(redirectAdminServices)
	assert.Contains(t, rec.Body.String(), "Маникюр с покрытием")

	base := fmt.Sprintf("%s/%d", redirectAdminServices, svc.ID)
	rec = c.get(base + RouteSuffixEdit)
	mustStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Body.String(), `value="Маникюр с покрытием"`)

	rec = c.postForm(base, url.Values{
		"title":          {"Маникюр"},
		"duration_hours": {"2"},
		"order":          {"1"},
	})
	assertRedirect(t, rec, redirectAdminServices)
	assert.Equal(t, "Услуга сохранена", c.flash())

	updated, err := env.catalog.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Маникюр", updated.Title)
	assert.False(t, updated.IsActive, "unchecked box hides the service")

	assertRedirect(t, c.postForm(base+RouteSuffixToggle, url.Values{"active": {"true"}}), redirectAdminServices)
	assert.Equal(t, "Услуга опубликована", c.flash())
	assertRedirect(t, c.postForm(base+RouteSuffixToggle, url.Values{"active": {"false"}}), redirectAdminServices)
	assert.Equal(t, "Услуга скрыта", c.flash())

	assertRedirect(t, c.postForm(base+RouteSuffixDelete, nil), redirectAdminServices)
	assert.Equal(t, "Услуга удалена", c.flash())

	_, err = env.catalog.Get(ctx, svc.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	events, err := env.events.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestServices_CreateInvalidRerendersForm(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(t, adminCRUDRouter(env, true))

	rec := c.postForm(redirectAdminServices, url.Values{
		"title":          {""},
		"description":    {"Без названия"},
		"duration_hours": {"0"},
	})
	mustStatus(t, rec, http.StatusUnprocessableEntity)
	body := rec.Body.String()
	assert.Contains(t, body, "Название обязательно")
	assert.Contains(t, body, "Длительность должна быть больше нуля")
	assert.Contains(t, body, "Без названия", "entered values are kept")

	list, err := env.catalog.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestServices_MissingAndInvalidIDs(t *testing.T) {
	env := newTestEnv(t)
	c := newClient(t, adminCRUDRouter(env, true))

	tests := []struct {
		name string
		do   func() *http.Response
		want string
	}{
		{"edit missing", func() *http.Response { return c.get(redirectAdminServices + "/999" + RouteSuffixEdit).Result() }, "Не найдено: услуга"},
		{"toggle missing", func() *http.Response {
			return c.postForm(redirectAdminServices+"/999"+RouteSuffixToggle, url.Values{"active": {"true"}}).Result()
		}, msgNotFound},
		{"delete missing", func() *http.Response {
			return c.postForm(redirectAdminServices+"/999"+RouteSuffixDelete, nil).Result()
		}, msgNotFound},
		{"bad id", func() *http.Response {
			return c.postForm(redirectAdminServices+"/abc"+RouteSuffixDelete, nil).Result()
		}, msgInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.do()
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, redirectAdminServices, resp.Header.Get("Location"))
			assert.Equal(t, tt.want, c.flash())
		})
	}
}
