// Package monitor is the consumer side of the collector: it drains queued
// samples on its own schedule, folds them into the rolling history, keeps
// the latest snapshot and the optional snapshot log, and serves the
// on-demand operations a renderer needs.
//
// A Monitor is owned by a single goroutine (the UI update loop) and is not
// safe for concurrent use. Only the Queue and the Sampler are shared with
// the collector goroutine, and both synchronise internally.
package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Dicklesworthstone/sysmoni/internal/collector"
	apperrors "github.com/Dicklesworthstone/sysmoni/internal/errors"
	"github.com/Dicklesworthstone/sysmoni/internal/export"
	"github.com/Dicklesworthstone/sysmoni/internal/history"
	"github.com/Dicklesworthstone/sysmoni/internal/logging"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
)

// LoggingState is the snapshot log toggle.
type LoggingState int

const (
	LoggingOff LoggingState = iota
	LoggingOn
)

func (s LoggingState) String() string {
	if s == LoggingOn {
		return "on"
	}
	return "off"
}

// Terminator requests graceful process termination.
type Terminator interface {
	Terminate(ctx context.Context, pid int32) error
}

// Monitor applies drained queue items and answers renderer queries.
type Monitor struct {
	queue   *collector.Queue
	sampler collector.Snapshotter
	killer  Terminator
	log     logging.Logger
	now     func() time.Time

	history *history.History
	latest  *model.Snapshot
	entries []model.Snapshot
	logging LoggingState
	status  string
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithHistorySize sets the rolling window length.
func WithHistorySize(n int) Option {
	return func(m *Monitor) { m.history = history.New(n) }
}

// WithTerminator sets the process terminator used by Kill.
func WithTerminator(t Terminator) Option {
	return func(m *Monitor) { m.killer = t }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.log = l
		}
	}
}

// WithLogging sets the initial logging state.
func WithLogging(on bool) Option {
	return func(m *Monitor) { m.SetLogging(on) }
}

// WithClock overrides time.Now for export file names.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a Monitor draining q. s is used for on-demand resampling.
func New(q *collector.Queue, s collector.Snapshotter, opts ...Option) *Monitor {
	m := &Monitor{
		queue:   q,
		sampler: s,
		log:     logging.NewNop(),
		now:     time.Now,
		history: history.New(history.DefaultSize),
		status:  "Ready",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Drain applies every queued item in FIFO order without blocking and
// returns how many were applied.
func (m *Monitor) Drain() int {
	items := m.queue.DrainAll()
	for _, it := range items {
		m.apply(it)
	}
	return len(items)
}

func (m *Monitor) apply(it collector.Item) {
	switch {
	case it.Failure != nil:
		m.status = "Sampler error: " + it.Failure.Message
		m.log.Warn("sampler error surfaced", logging.String("message", it.Failure.Message))
	case it.Snapshot != nil:
		s := *it.Snapshot
		m.history.Append(s.Timestamp, s.CPU.TotalPercent, s.Memory.Virtual.Percent)
		m.latest = &s
		if m.logging == LoggingOn {
			m.entries = append(m.entries, s)
		}
		m.status = "Last update: " + FormatTimestamp(s.Timestamp)
	}
}

// Latest returns the most recently applied snapshot.
func (m *Monitor) Latest() (model.Snapshot, bool) {
	if m.latest == nil {
		return model.Snapshot{}, false
	}
	return *m.latest, true
}

// History returns the rolling window.
func (m *Monitor) History() *history.History { return m.history }

// Log returns the snapshots recorded while logging was on.
func (m *Monitor) Log() []model.Snapshot { return m.entries }

// ClearLog drops all recorded snapshots.
func (m *Monitor) ClearLog() {
	m.entries = nil
	m.status = "Logs cleared"
}

// Status is the message for the status line.
func (m *Monitor) Status() string { return m.status }

// Logging reports the current logging state.
func (m *Monitor) Logging() LoggingState { return m.logging }

// SetLogging switches logging on or off.
func (m *Monitor) SetLogging(on bool) {
	if on {
		m.logging = LoggingOn
		m.status = "Logging started"
	} else {
		m.logging = LoggingOff
		m.status = "Logging stopped"
	}
}

// ToggleLogging flips the logging state and returns the new one.
func (m *Monitor) ToggleLogging() LoggingState {
	m.SetLogging(m.logging == LoggingOff)
	m.log.Info("logging toggled", logging.String("state", m.logging.String()))
	return m.logging
}

// Resample takes a snapshot immediately on the caller's goroutine,
// bypassing the queue. It blocks for a full OS query. The result is not
// applied to history.
func (m *Monitor) Resample(ctx context.Context) (model.Snapshot, error) {
	s, err := m.sampler.Snapshot(ctx)
	if err != nil {
		m.status = "Sampler error: " + err.Error()
		return model.Snapshot{}, err
	}
	return s, nil
}

// ExportSnapshot writes the latest snapshot as JSON.
func (m *Monitor) ExportSnapshot(w io.Writer) error {
	s, ok := m.Latest()
	if !ok {
		return apperrors.ErrNoData
	}
	return export.WriteSnapshot(w, s)
}

// ExportLog writes the snapshot log as a JSON array.
func (m *Monitor) ExportLog(w io.Writer) error {
	return export.WriteLog(w, m.entries)
}

// SaveSnapshot writes the latest snapshot into dir and returns the path.
func (m *Monitor) SaveSnapshot(dir string) (string, error) {
	s, ok := m.Latest()
	if !ok {
		return "", apperrors.ErrNoData
	}
	path, err := export.SaveSnapshot(dir, s, m.now())
	if err != nil {
		m.log.Error("snapshot export failed", err, logging.String("dir", dir))
		return "", err
	}
	m.status = "Snapshot saved: " + path
	return path, nil
}

// SaveLog writes the snapshot log to path.
func (m *Monitor) SaveLog(path string) error {
	if err := export.SaveLog(path, m.entries); err != nil {
		return err
	}
	m.status = "Logs exported: " + path
	return nil
}

// Kill asks pid to terminate and records the outcome in the status line.
func (m *Monitor) Kill(ctx context.Context, pid int32) error {
	var err error
	if m.killer == nil {
		err = &apperrors.ProcessError{PID: pid, Cause: apperrors.ErrAccessDenied}
	} else {
		err = m.killer.Terminate(ctx, pid)
	}
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		m.log.Warn("terminate failed", logging.Int("pid", int(pid)), logging.Err(err))
		return err
	}
	m.status = fmt.Sprintf("Process %d terminated.", pid)
	return nil
}

// FormatTimestamp renders t the way the status line and log list show it.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
