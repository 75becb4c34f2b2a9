// Package scheduler runs the weekly leaderboard reset on a cron cadence.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Resetter clears the aggregate leaderboard state.
type Resetter interface {
	ResetAggregates()
}

// Scheduler owns the cron runner for periodic maintenance jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a Scheduler with the weekly reset job registered.
// spec is a standard 5-field cron expression, e.g. "0 0 * * 0" for
// Sunday midnight.
func New(spec string, resetter Resetter, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New()
	log := logger.With("component", "scheduler")

	if _, err := c.AddFunc(spec, func() {
		resetter.ResetAggregates()
		log.Info("weekly aggregates reset", "schedule", spec)
	}); err != nil {
		return nil, fmt.Errorf("register reset job %q: %w", spec, err)
	}

	return &Scheduler{cron: c, logger: log}, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop halts the cron runner, waiting for a running job to finish or the
// context to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
