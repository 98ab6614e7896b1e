// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Retention job names.
const (
	JobPurgeEvents      = "purge-events"
	JobPurgeSubmissions = "purge-submissions"
)

// EventPurger deletes event log entries older than age.
type EventPurger interface {
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// SubmissionPurger deletes stored contact submissions older than age.
type SubmissionPurger interface {
	PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// RetentionConfig sets how long records are kept. A zero or negative
// number of days disables the corresponding job.
type RetentionConfig struct {
	EventDays      int
	SubmissionDays int
	Schedule       string // defaults to daily at 03:30
}

// RetentionJobs builds the purge jobs for the event log and submissions.
func RetentionJobs(events EventPurger, submissions SubmissionPurger, cfg RetentionConfig, logger *slog.Logger) []Job {
	if logger == nil {
		logger = slog.Default()
	}
	schedule := cfg.Schedule
	if schedule == "" {
		schedule = "30 3 * * *"
	}

	var jobs []Job
	if events != nil && cfg.EventDays > 0 {
		age := days(cfg.EventDays)
		jobs = append(jobs, Job{
			Name:        JobPurgeEvents,
			Description: "Удаление старых записей журнала",
			Schedule:    schedule,
			Run: func(ctx context.Context) error {
				n, err := events.DeleteOlderThan(ctx, age)
				if err != nil {
					return err
				}
				if n > 0 {
					logger.Info("purged old events", "count", n, "older_than_days", cfg.EventDays)
				}
				return nil
			},
		})
	}

	if submissions != nil && cfg.SubmissionDays > 0 {
		age := days(cfg.SubmissionDays)
		jobs = append(jobs, Job{
			Name:        JobPurgeSubmissions,
			Description: "Удаление старых заявок",
			Schedule:    schedule,
			Run: func(ctx context.Context) error {
				n, err := submissions.PurgeOlderThan(ctx, age)
				if err != nil {
					return err
				}
				if n > 0 {
					logger.Info("purged old contact submissions", "count", n, "older_than_days", cfg.SubmissionDays)
				}
				return nil
			},
		})
	}

	return jobs
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
