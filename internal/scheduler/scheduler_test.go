// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/nailstudio/internal/testutil"
)

func TestScheduler_StartStop(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	if err := s.Register(Job{Name: "noop", Schedule: "@hourly", Run: func(context.Context) error { return nil }}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	s.Start()
	s.Stop()
}

func TestScheduler_RegisterValidation(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	run := func(context.Context) error { return nil }

	tests := []struct {
		name string
		job  Job
	}{
		{"missing name", Job{Schedule: "@daily", Run: run}},
		{"missing run", Job{Name: "x", Schedule: "@daily"}},
		{"bad schedule", Job{Name: "x", Schedule: "every day", Run: run}},
		{"six fields", Job{Name: "x", Schedule: "0 0 0 * * *", Run: run}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Register(tt.job); err == nil {
				t.Error("expected error")
			}
		})
	}

	if err := s.Register(Job{Name: "dup", Schedule: "@daily", Run: run}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := s.Register(Job{Name: "dup", Schedule: "@daily", Run: run}); err == nil {
		t.Error("duplicate name should fail")
	}
}

func TestScheduler_TriggerNowAndList(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	calls := 0
	fail := errors.New("disk full")

	_ = s.Register(Job{Name: "b-ok", Schedule: "@daily", Run: func(context.Context) error {
		calls++
		return nil
	}})
	_ = s.Register(Job{Name: "a-fail", Schedule: "@daily", Run: func(context.Context) error {
		return fail
	}})

	if err := s.TriggerNow("b-ok"); err != nil {
		t.Fatalf("TriggerNow: %v", err)
	}
	if err := s.TriggerNow("a-fail"); !errors.Is(err, fail) {
		t.Errorf("TriggerNow error = %v, want %v", err, fail)
	}
	if err := s.TriggerNow("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("TriggerNow(missing) = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}

	jobs := s.List()
	if len(jobs) != 2 || jobs[0].Name != "a-fail" || jobs[1].Name != "b-ok" {
		t.Fatalf("List = %+v", jobs)
	}
	if jobs[0].LastError != "disk full" {
		t.Errorf("LastError = %q", jobs[0].LastError)
	}
	if jobs[1].LastRun.IsZero() || jobs[1].LastError != "" {
		t.Errorf("b-ok info = %+v", jobs[1])
	}
}

type fakePurger struct {
	age time.Duration
	n   int64
	err error
}

func (f *fakePurger) DeleteOlderThan(_ context.Context, age time.Duration) (int64, error) {
	f.age = age
	return f.n, f.err
}

func (f *fakePurger) PurgeOlderThan(_ context.Context, age time.Duration) (int64, error) {
	f.age = age
	return f.n, f.err
}

func TestRetentionJobs(t *testing.T) {
	events := &fakePurger{n: 3}
	subs := &fakePurger{}
	jobs := RetentionJobs(events, subs, RetentionConfig{EventDays: 30, SubmissionDays: 180}, testutil.TestLoggerSilent())

	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	for _, j := range jobs {
		if err := j.Run(context.Background()); err != nil {
			t.Errorf("%s: %v", j.Name, err)
		}
		if j.Schedule != "30 3 * * *" {
			t.Errorf("%s schedule = %q", j.Name, j.Schedule)
		}
	}
	if events.age != 30*24*time.Hour {
		t.Errorf("event age = %v", events.age)
	}
	if subs.age != 180*24*time.Hour {
		t.Errorf("submission age = %v", subs.age)
	}
}

func TestRetentionJobsDisabled(t *testing.T) {
	jobs := RetentionJobs(&fakePurger{}, &fakePurger{}, RetentionConfig{EventDays: 0, SubmissionDays: -1}, nil)
	if len(jobs) != 0 {
		t.Errorf("got %d jobs, want none", len(jobs))
	}
}

func TestRetentionJobsPropagateErrors(t *testing.T) {
	boom := errors.New("locked")
	jobs := RetentionJobs(nil, &fakePurger{err: boom}, RetentionConfig{SubmissionDays: 1}, nil)
	if len(jobs) != 1 || jobs[0].Name != JobPurgeSubmissions {
		t.Fatalf("jobs = %+v", jobs)
	}
	if err := jobs[0].Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run error = %v", err)
	}
}
