// Package scheduler runs the periodic background jobs: currently just
// the overdue-reminder sweep.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/pennywiseapp/pennywise/internal/service"
)

// Scheduler owns the cron runner and its jobs.
type Scheduler struct {
	cron      *cron.Cron
	reminders *service.ReminderService
}

// New builds a scheduler with the reminder sweep registered on the
// given cron spec (e.g. "@every 1h").
func New(reminders *service.ReminderService, sweepSpec string) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		reminders: reminders,
	}

	_, err := s.cron.AddFunc(sweepSpec, s.sweep)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep spec %q: %w", sweepSpec, err)
	}
	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Scheduler started")
}

// Stop halts the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) sweep() {
	due, err := s.reminders.SweepOverdue(context.Background())
	if err != nil {
		slog.Error("Reminder sweep failed", "error", err)
		return
	}
	slog.Debug("Reminder sweep finished", "overdue", len(due))
}
