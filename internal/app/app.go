// Package app wires configuration, sampling, the collector loop and the
// chosen front end (dashboard or headless output) into one run.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/sysmoni/internal/cli"
	"github.com/Dicklesworthstone/sysmoni/internal/collector"
	"github.com/Dicklesworthstone/sysmoni/internal/config"
	apperrors "github.com/Dicklesworthstone/sysmoni/internal/errors"
	"github.com/Dicklesworthstone/sysmoni/internal/logging"
	"github.com/Dicklesworthstone/sysmoni/internal/monitor"
	"github.com/Dicklesworthstone/sysmoni/internal/sampler"
	"github.com/Dicklesworthstone/sysmoni/internal/ui"
)

// Application holds a resolved configuration and its OS collaborators.
type Application struct {
	Config     config.Config
	ErrWriter  io.Writer
	Source     sampler.Source
	Terminator monitor.Terminator

	runDashboard func(ctx context.Context, mon *monitor.Monitor, cfg config.Config) error
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSource replaces the host metrics source.
func WithSource(src sampler.Source) AppOption {
	return func(a *Application) { a.Source = src }
}

// WithTerminator replaces the process terminator.
func WithTerminator(t monitor.Terminator) AppOption {
	return func(a *Application) { a.Terminator = t }
}

// New parses args (without the program name) into an Application.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	cfg, err := config.FromFlags(args)
	if err != nil {
		return nil, err
	}
	app := &Application{
		Config:       cfg,
		ErrWriter:    errWriter,
		runDashboard: ui.RunTUI,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.Source == nil {
		app.Source = sampler.NewHostSource()
	}
	if app.Terminator == nil {
		app.Terminator = sampler.HostTerminator{}
	}
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	log, closeLog, err := a.newLogger()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	smp := sampler.New(ctx, a.Source,
		sampler.WithInterval(a.Config.Interval),
		sampler.WithTopN(a.Config.TopN),
		sampler.WithLogger(log.With("sampler")))

	switch {
	case a.Config.JSON:
		err = cli.RunOnce(ctx, out, a.ErrWriter, smp, a.Config.Interval)
	case a.Config.JSONStream:
		loop := collector.New(smp, collector.NewQueue(),
			collector.WithInterval(a.Config.Interval),
			collector.WithLogger(log.With("collector")))
		err = cli.Stream(ctx, out, loop, a.Config.Refresh, log.With("stream"))
	default:
		err = a.dashboard(ctx, smp, log)
	}
	return a.exitCode(err)
}

// dashboard runs the collector loop and the UI together. Quitting the UI
// cancels the loop and waits for it.
func (a *Application) dashboard(ctx context.Context, smp *sampler.Sampler, log *logging.ZerologAdapter) error {
	q := collector.NewQueue()
	loop := collector.New(smp, q,
		collector.WithInterval(a.Config.Interval),
		collector.WithLogger(log.With("collector")))
	mon := monitor.New(q, smp,
		monitor.WithHistorySize(a.Config.HistorySize),
		monitor.WithTerminator(a.Terminator),
		monitor.WithLogger(log.With("monitor")),
		monitor.WithLogging(a.Config.Logging))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := loop.Run(gctx); err != nil && !apperrors.IsContextError(err) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return a.runDashboard(gctx, mon, a.Config)
	})
	return g.Wait()
}

// newLogger picks the diagnostics sink: -log-file when set, stderr in
// headless modes, nowhere while the dashboard owns the terminal.
func (a *Application) newLogger() (*logging.ZerologAdapter, func(), error) {
	lvl := logging.ParseLevel(a.Config.LogLevel)
	switch {
	case a.Config.LogFile != "":
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, apperrors.NewConfigError("opening log file: %v", err)
		}
		return logging.NewLogger(f, "sysmoni").Level(lvl), func() { _ = f.Close() }, nil
	case a.Config.Headless():
		return logging.NewConsoleLogger(a.ErrWriter, "sysmoni").Level(lvl), func() {}, nil
	default:
		return logging.NewNop(), func() {}, nil
	}
}

func (a *Application) exitCode(err error) int {
	var cfgErr apperrors.ConfigError
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case apperrors.IsContextError(err):
		return apperrors.ExitErrorCanceled
	case errors.As(err, &cfgErr):
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	default:
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
}

// IsHelpError checks if the error is a help flag error (-h was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeFor maps a New error to an exit code.
func ExitCodeFor(err error) int {
	var cfgErr apperrors.ConfigError
	switch {
	case err == nil || IsHelpError(err):
		return apperrors.ExitSuccess
	case errors.As(err, &cfgErr):
		return apperrors.ExitErrorConfig
	default:
		return apperrors.ExitErrorGeneric
	}
}
