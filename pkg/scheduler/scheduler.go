// Package scheduler runs recurring background jobs until their context is cancelled.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/atm/pkg/trace"
)

// Schedule returns the next run time strictly after t.
type Schedule func(t time.Time) time.Time

// Every runs a job at a fixed interval.
func Every(d time.Duration) Schedule {
	return func(t time.Time) time.Time { return t.Add(d) }
}

// EndOfMonth runs a job at midnight starting the last day of each month, in t's location.
func EndOfMonth() Schedule {
	return func(t time.Time) time.Time {
		y, m, _ := t.Date()
		for {
			// day 0 of the next month is the last day of m
			last := time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location())
			if last.After(t) {
				return last
			}
			m++
		}
	}
}

// Job is one unit of background work.
type Job struct {
	Name     string
	Schedule Schedule
	// RunAtStart runs the job once before waiting for the first scheduled time.
	RunAtStart bool
	// Timeout bounds a single run. Zero leaves the run unbounded.
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Scheduler runs registered jobs, each on its own goroutine.
type Scheduler struct {
	jobs   []Job
	logger *slog.Logger
	now    func() time.Time
}

// New creates an empty Scheduler.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{logger: logger.With("component", "scheduler"), now: time.Now}
}

// Add registers a job. Jobs must be added before Run.
func (s *Scheduler) Add(job Job) {
	s.jobs = append(s.jobs, job)
}

// Run blocks until ctx is cancelled and every job has returned.
func (s *Scheduler) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			s.loop(ctx, job)
		}(job)
	}
	s.logger.Info("scheduler started", "jobs", len(s.jobs))
	wg.Wait()
	s.logger.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	if job.RunAtStart {
		s.runOnce(ctx, job)
	}
	for {
		now := s.now()
		next := job.Schedule(now)
		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}
	runCtx, id := trace.Ensure(ctx)
	logger := s.logger.With("job", job.Name, "trace_id", id)
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, job.Timeout)
		defer cancel()
	}

	started := s.now()
	logger.Info("job started")
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job failed: panic", "panic", r)
		}
	}()
	if err := job.Run(runCtx); err != nil {
		logger.Error("job failed", "error", err, "elapsed", s.now().Sub(started))
		return
	}
	logger.Info("job completed", "elapsed", s.now().Sub(started))
}
