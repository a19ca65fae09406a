// Package cli implements the headless output modes: a one-shot JSON
// snapshot and an NDJSON stream of queued items.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/sysmoni/internal/collector"
	"github.com/Dicklesworthstone/sysmoni/internal/export"
	"github.com/Dicklesworthstone/sysmoni/internal/logging"
)

// SpinnerRefreshRate is the spinner frame interval.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner abstracts the terminal spinner so tests can observe it.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(w io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(w))
	return &realSpinner{s}
}

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RunOnce waits one warm-up interval so rates and per-process CPU have a
// baseline, then writes a single indented snapshot to out. A spinner is drawn
// on errOut while waiting if errOut is a terminal.
func RunOnce(ctx context.Context, out, errOut io.Writer, src collector.Snapshotter, warmup time.Duration) error {
	if warmup > 0 {
		var sp Spinner
		if isTerminal(errOut) {
			sp = newSpinner(errOut)
			sp.UpdateSuffix(" sampling...")
			sp.Start()
		}
		wait := time.NewTimer(warmup)
		select {
		case <-ctx.Done():
			wait.Stop()
		case <-wait.C:
		}
		if sp != nil {
			sp.Stop()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	snap, err := src.Snapshot(ctx)
	if err != nil {
		return err
	}
	return export.WriteSnapshot(out, snap)
}

// Stream runs loop and writes every queued item to out as one JSON line,
// checking the queue every poll. It returns nil once ctx is cancelled and
// the queue has been flushed, or the first write error.
func Stream(ctx context.Context, out io.Writer, loop *collector.Loop, poll time.Duration, log logging.Logger) error {
	if log == nil {
		log = logging.NewNop()
	}
	g, gctx := errgroup.WithContext(ctx)
	loopDone := make(chan struct{})

	g.Go(func() error {
		defer close(loopDone)
		_ = loop.Run(gctx)
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(poll)
		defer ticker.Stop()
		written := 0
		for {
			select {
			case <-gctx.Done():
				// A tick in flight at cancellation still pushes its snapshot.
				<-loopDone
				err := flush(out, loop.Queue())
				log.Info("stream stopped", logging.Int("lines", written))
				return err
			case <-ticker.C:
				n, err := writeQueued(out, loop.Queue())
				written += n
				if err != nil {
					log.Error("stream write failed", err)
					return err
				}
			}
		}
	})

	return g.Wait()
}

func flush(out io.Writer, q *collector.Queue) error {
	_, err := writeQueued(out, q)
	return err
}

func writeQueued(out io.Writer, q *collector.Queue) (int, error) {
	n := 0
	for _, it := range q.DrainAll() {
		var v any
		switch {
		case it.Snapshot != nil:
			v = it.Snapshot
		case it.Failure != nil:
			v = it.Failure
		default:
			continue
		}
		if err := export.WriteLine(out, v); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
