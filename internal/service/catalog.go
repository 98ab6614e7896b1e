// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/nailstudio/internal/store"
	"github.com/olegiv/nailstudio/internal/util"
)

// ServiceInput is the admin form for one service.
type ServiceInput struct {
	Title         string  `validate:"required,max=200"`
	Description   string  `validate:"max=5000"`
	Price         string  `validate:"max=100"`
	DurationHours float64 `validate:"gt=0,lte=24"`
	ImageURL      string  `validate:"omitempty,max=500"`
	Order         int64   `validate:"gte=0"`
	IsActive      bool
}

var serviceMessages = map[string]string{
	"Title.required":    "Название обязательно",
	"Title.max":         "Название слишком длинное",
	"Description.max":   "Описание слишком длинное",
	"Price.max":         "Цена слишком длинная",
	"DurationHours.gt":  "Длительность должна быть больше нуля",
	"DurationHours.lte": "Длительность не может превышать 24 часа",
	"ImageURL.max":      "Ссылка слишком длинная",
	"Order.gte":         "Порядок не может быть отрицательным",
}

var serviceFieldNames = map[string]string{
	"Title":         "title",
	"Description":   "description",
	"Price":         "price",
	"DurationHours": "duration_hours",
	"ImageURL":      "image_url",
	"Order":         "order",
}

// CatalogService manages the services price list.
type CatalogService struct {
	queries  *store.Queries
	pages    *PageService
	validate *validator.Validate
	policy   *bluemonday.Policy
	logger   *slog.Logger
}

// NewCatalogService creates a CatalogService. pages may be nil.
func NewCatalogService(db *sql.DB, pages *PageService, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		queries:  store.New(db),
		pages:    pages,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		policy:   bluemonday.StrictPolicy(),
		logger:   logger,
	}
}

// List returns all services, active and inactive, by position.
func (s *CatalogService) List(ctx context.Context) ([]store.Service, error) {
	services, err := s.queries.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	return services, nil
}

// Get returns one service or ErrNotFound.
func (s *CatalogService) Get(ctx context.Context, id int64) (*store.Service, error) {
	svc, err := s.queries.GetServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading service %d: %w", id, err)
	}
	return &svc, nil
}

// Validate cleans the input in place and checks it.
func (s *CatalogService) Validate(in *ServiceInput) error {
	in.Title = plainText(s.policy, in.Title)
	in.Description = plainText(s.policy, in.Description)
	in.Price = plainText(s.policy, in.Price)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating service: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		msg, ok := serviceMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Некорректное значение"
		}
		ve.add(serviceFieldNames[fe.Field()], msg)
	}
	return ve
}

// Create validates and inserts a service.
func (s *CatalogService) Create(ctx context.Context, in ServiceInput) (*store.Service, error) {
	if err := s.Validate(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	svc, err := s.queries.CreateService(ctx, store.CreateServiceParams{
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		DurationHours: in.DurationHours,
		ImageUrl:      util.NullStringFromValue(in.ImageURL),
		Position:      in.Order,
		IsActive:      in.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("creating service: %w", err)
	}
	s.invalidate(ctx)
	return &svc, nil
}

// Update validates and overwrites a service. Last write wins.
func (s *CatalogService) Update(ctx context.Context, id int64, in ServiceInput) (*store.Service, error) {
	if err := s.Validate(&in); err != nil {
		return nil, err
	}
	svc, err := s.queries.UpdateService(ctx, store.UpdateServiceParams{
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		DurationHours: in.DurationHours,
		ImageUrl:      util.NullStringFromValue(in.ImageURL),
		Position:      in.Order,
		IsActive:      in.IsActive,
		UpdatedAt:     time.Now(),
		ID:            id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating service %d: %w", id, err)
	}
	s.invalidate(ctx)
	return &svc, nil
}

// SetActive shows or hides a service on the landing page.
func (s *CatalogService) SetActive(ctx context.Context, id int64, active bool) error {
	n, err := s.queries.SetServiceActive(ctx, store.SetServiceActiveParams{
		IsActive:  active,
		UpdatedAt: time.Now(),
		ID:        id,
	})
	if err != nil {
		return fmt.Errorf("toggling service %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a service.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteService(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting service %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.pages != nil {
		s.pages.Invalidate(ctx)
	}
}

// plainText strips all markup. Entities are decoded again because templates
// escape on output.
func plainText(p *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
}
