package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Job is one refresh of the display.
type Job func(ctx context.Context)

// Scheduler runs the refresh job on a fixed cadence, starting immediately.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	job       Job
}

// New creates a new Scheduler.
func New(interval time.Duration, job Job) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		interval:  interval,
		job:       job,
	}
}

// Start schedules the job and starts the underlying scheduler. A run that is
// still going when the next one is due delays it rather than overlapping.
func (s *Scheduler) Start(ctx context.Context) error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 30
	}

	_, err := s.scheduler.Every(minutes).Minutes().SingletonMode().Do(func() {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		slog.Info("scheduler: running refresh job")
		s.job(ctx)
		slog.Info("scheduler: completed refresh job", "took", time.Since(start).Round(time.Millisecond))
	})
	if err != nil {
		return err
	}

	slog.Info("scheduler started", "every_mins", minutes)
	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
