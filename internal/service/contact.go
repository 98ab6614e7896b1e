// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/nailstudio/internal/model"
	"github.com/olegiv/nailstudio/internal/store"
	"github.com/olegiv/nailstudio/internal/telegram"
	"github.com/olegiv/nailstudio/internal/util"
)

// SubmissionsPerPage is the admin list page size.
const SubmissionsPerPage = 25

// ContactRequest is an appointment request from the landing page form.
type ContactRequest struct {
	Name      string `validate:"required,min=2,max=100"`
	Phone     string `validate:"required,min=10,max=32"`
	Service   string `validate:"max=200"`
	Date      string `validate:"omitempty,datetime=2006-01-02"`
	Message   string `validate:"max=2000"`
	Source    string
	UserAgent string
	IPAddress string
}

func (r *ContactRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Service = strings.TrimSpace(r.Service)
	r.Date = strings.TrimSpace(r.Date)
	r.Message = strings.TrimSpace(r.Message)
	r.Source = strings.TrimSpace(r.Source)
	if r.Source == "" {
		r.Source = model.ContactSourceDefault
	}
}

// contactMessages maps "Field.tag" to the message shown under the input.
var contactMessages = map[string]string{
	"Name.required":  "Имя должно содержать минимум 2 символа",
	"Name.min":       "Имя должно содержать минимум 2 символа",
	"Name.max":       "Имя слишком длинное",
	"Phone.required": "Некорректный номер телефона",
	"Phone.min":      "Некорректный номер телефона",
	"Phone.max":      "Некорректный номер телефона",
	"Service.max":    "Название услуги слишком длинное",
	"Date.datetime":  "Некорректная дата",
	"Message.max":    "Комментарий слишком длинный",
}

// ContactService validates appointment requests, stores them and forwards
// them to the bot.
type ContactService struct {
	queries  *store.Queries
	sender   telegram.Sender
	validate *validator.Validate
	location *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

// NewContactService creates a ContactService. loc is the zone printed in bot
// messages.
func NewContactService(db *sql.DB, sender telegram.Sender, loc *time.Location, logger *slog.Logger) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ContactService{
		queries:  store.New(db),
		sender:   sender,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		location: loc,
		logger:   logger,
		now:      time.Now,
	}
}

// Validate checks the request and returns a *ValidationError on failure.
func (s *ContactService) Validate(req *ContactRequest) error {
	req.normalize()

	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating contact request: %w", err)
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		msg, ok := contactMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Некорректное значение"
		}
		ve.add(strings.ToLower(fe.Field()), msg)
	}
	return ve
}

// Submit validates, persists and delivers one request. A storage failure is
// logged and does not stop delivery. Delivery is attempted once.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (int64, error) {
	if err := s.Validate(&req); err != nil {
		return 0, err
	}

	now := s.now()
	submission, err := s.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		Name:        req.Name,
		Phone:       req.Phone,
		Service:     req.Service,
		DesiredDate: req.Date,
		Message:     req.Message,
		Source:      req.Source,
		Client:      util.ClientSummary(req.UserAgent),
		IpAddress:   req.IPAddress,
		CreatedAt:   now,
	})
	if err != nil {
		s.logger.Error("failed to store contact submission", "error", err, "category", model.EventCategoryContact)
	}

	sendErr := s.deliver(ctx, appointmentFrom(req), now)
	if submission.ID != 0 {
		s.markDelivery(ctx, submission.ID, sendErr)
	}

	if sendErr != nil {
		s.logger.Warn("contact submission not delivered", "error", sendErr, "submission_id", submission.ID,
			"category", model.EventCategoryContact)
		return submission.ID, fmt.Errorf("delivering contact submission: %w", sendErr)
	}

	s.logger.Info("contact submission delivered", "submission_id", submission.ID)
	return submission.ID, nil
}

// Resend delivers a stored submission again. Only an admin triggers it.
func (s *ContactService) Resend(ctx context.Context, id int64) error {
	sub, err := s.queries.GetContactSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("loading submission %d: %w", id, err)
	}

	sendErr := s.deliver(ctx, telegram.Appointment{
		Name:    sub.Name,
		Phone:   sub.Phone,
		Service: sub.Service,
		Date:    sub.DesiredDate,
		Message: sub.Message,
		Source:  sub.Source,
	}, s.now())
	s.markDelivery(ctx, id, sendErr)
	if sendErr != nil {
		return fmt.Errorf("delivering submission %d: %w", id, sendErr)
	}
	return nil
}

func (s *ContactService) deliver(ctx context.Context, a telegram.Appointment, now time.Time) error {
	if s.sender == nil {
		return telegram.ErrNotConfigured
	}
	return s.sender.Send(ctx, telegram.FormatAppointment(a, now, s.location))
}

func (s *ContactService) markDelivery(ctx context.Context, id int64, sendErr error) {
	params := store.MarkSubmissionDeliveryParams{Delivered: sendErr == nil, ID: id}
	if sendErr != nil {
		params.DeliveryError = sendErr.Error()
	}
	// The request context may already be cancelled after a slow bot call.
	if err := s.queries.MarkSubmissionDelivery(context.WithoutCancel(ctx), params); err != nil {
		s.logger.Error("failed to record delivery result", "error", err, "submission_id", id)
	}
}

func appointmentFrom(req ContactRequest) telegram.Appointment {
	return telegram.Appointment{
		Name:    req.Name,
		Phone:   req.Phone,
		Service: req.Service,
		Date:    req.Date,
		Message: req.Message,
		Source:  req.Source,
	}
}

// SubmissionPage is one page of the admin submissions list.
type SubmissionPage struct {
	Items       []store.ContactSubmission
	Total       int64
	Undelivered int64
	Page        int
	TotalPages  int
}

// List returns a page of submissions, newest first. page is 1-based.
func (s *ContactService) List(ctx context.Context, page int) (*SubmissionPage, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.queries.CountContactSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting submissions: %w", err)
	}
	undelivered, err := s.queries.CountUndeliveredSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting undelivered submissions: %w", err)
	}
	items, err := s.queries.ListContactSubmissions(ctx, store.ListContactSubmissionsParams{
		Limit:  SubmissionsPerPage,
		Offset: int64((page - 1) * SubmissionsPerPage),
	})
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}

	totalPages := int((total + SubmissionsPerPage - 1) / SubmissionsPerPage)
	if totalPages == 0 {
		totalPages = 1
	}
	return &SubmissionPage{
		Items:       items,
		Total:       total,
		Undelivered: undelivered,
		Page:        page,
		TotalPages:  totalPages,
	}, nil
}

// Delete removes one submission.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteContactSubmission(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting submission %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeOlderThan deletes submissions older than age.
func (s *ContactService) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	return s.queries.DeleteContactSubmissionsBefore(ctx, s.now().Add(-age))
}
