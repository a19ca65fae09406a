package collector

import (
	"context"
	"time"

	"github.com/Dicklesworthstone/sysmoni/internal/logging"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
)

// Snapshotter produces one snapshot per call. *sampler.Sampler satisfies it.
type Snapshotter interface {
	Snapshot(ctx context.Context) (model.Snapshot, error)
}

// Loop samples, enqueues, then waits one interval, until its context ends.
type Loop struct {
	src      Snapshotter
	queue    *Queue
	interval time.Duration
	now      func() time.Time
	log      logging.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithInterval sets the wait between samples.
func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(lg logging.Logger) Option {
	return func(l *Loop) {
		if lg != nil {
			l.log = lg
		}
	}
}

// WithClock overrides time.Now for failure timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a Loop publishing into q.
func New(src Snapshotter, q *Queue, opts ...Option) *Loop {
	l := &Loop{
		src:      src,
		queue:    q,
		interval: time.Second,
		now:      time.Now,
		log:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Queue returns the queue the loop publishes into.
func (l *Loop) Queue() *Queue { return l.queue }

// Run blocks until ctx is cancelled and returns ctx.Err(). Sampling errors
// are queued as Failures and never stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("collector started", logging.Duration("interval", l.interval))
	defer l.log.Info("collector stopped")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Tick(ctx)

		wait := time.NewTimer(l.interval)
		select {
		case <-ctx.Done():
			wait.Stop()
			return ctx.Err()
		case <-wait.C:
		}
	}
}

// Tick performs one sample-and-enqueue step.
func (l *Loop) Tick(ctx context.Context) {
	snap, err := l.src.Snapshot(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		l.log.Warn("sample failed", logging.Err(err))
		l.queue.Push(Item{Failure: &model.Failure{Timestamp: l.now(), Message: err.Error()}})
		return
	}
	l.queue.Push(Item{Snapshot: &snap})
	l.log.Debug("sample queued", logging.Int("queued", l.queue.Len()))
}
