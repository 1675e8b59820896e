package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Clock abstracts time so triggers can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time                         { return time.Now() }
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Job is one unit of periodic work.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Trigger calls its jobs in order on every tick. Jobs never overlap: the next
// wait starts only after the previous round returns.
type Trigger struct {
	clock      Clock
	interval   time.Duration
	jobs       []Job
	logger     *zap.Logger
	runOnStart bool
}

// Option customises a Trigger.
type Option func(*Trigger)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(t *Trigger) { t.clock = c }
}

// WithRunOnStart fires one round immediately when Run starts.
func WithRunOnStart() Option {
	return func(t *Trigger) { t.runOnStart = true }
}

// NewTrigger creates a trigger firing every interval.
func NewTrigger(interval time.Duration, logger *zap.Logger, jobs []Job, opts ...Option) *Trigger {
	t := &Trigger{
		clock:    SystemClock{},
		interval: interval,
		jobs:     jobs,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run blocks until ctx is cancelled.
func (t *Trigger) Run(ctx context.Context) error {
	if t.runOnStart {
		t.fire(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.clock.After(t.interval):
			t.fire(ctx)
		}
	}
}

func (t *Trigger) fire(ctx context.Context) {
	for _, job := range t.jobs {
		if ctx.Err() != nil {
			return
		}
		start := t.clock.Now()
		if err := job.Run(ctx); err != nil {
			t.logger.Warn("Scheduled job failed", zap.String("job", job.Name), zap.Error(err))
			continue
		}
		t.logger.Debug("Scheduled job finished",
			zap.String("job", job.Name),
			zap.Duration("duration", t.clock.Now().Sub(start)))
	}
}
