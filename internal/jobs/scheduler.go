// Package jobs runs periodic background work.
package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Reporter produces a progress report; implemented by service.StatsService
type Reporter interface {
	Report(ctx context.Context) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	reporter  Reporter
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a scheduler that runs the report every interval
func New(reporter Reporter, interval time.Duration, loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		reporter:  reporter,
		interval:  interval,
		timeout:   time.Minute,
		logger:    logger,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.runReport); err != nil {
		return err
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.logger.Info("Scheduler started", zap.Duration("report_interval", s.interval))
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runReport() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.reporter.Report(ctx); err != nil {
		s.logger.Error("Scheduled report failed", zap.Error(err))
	}
}
