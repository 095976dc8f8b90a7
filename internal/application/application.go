package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/senzing-package/internal/config"
	"github.com/eugenenazirov/senzing-package/internal/installer"
	"github.com/eugenenazirov/senzing-package/internal/logging"
)

const (
	// Version of senzing-package.
	Version = "1.1.0"
	// Updated is the date Version was last changed.
	Updated = "2019-07-16"
)

// ErrUnknownSubcommand is returned by Run for a value with no action.
var ErrUnknownSubcommand = errors.New("unknown subcommand")

type action func(ctx context.Context) error

// App encapsulates the resolved configuration and the actions it drives.
type App struct {
	cfg              config.Config
	msgs             *logging.Messages
	installer        *installer.Installer
	now              func() time.Time
	sleepUnit        time.Duration
	sleepLogInterval time.Duration
	actions          map[Subcommand]action
}

// Option configures an App.
type Option func(*App)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithSleepUnit overrides the length of one "second" of sleep_time_in_seconds (primarily for tests).
func WithSleepUnit(d time.Duration) Option {
	return func(a *App) {
		a.sleepUnit = d
	}
}

// WithSleepLogInterval overrides SleepLogInterval.
func WithSleepLogInterval(d time.Duration) Option {
	return func(a *App) {
		a.sleepLogInterval = d
	}
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) *App {
	a := &App{
		cfg:              cfg,
		msgs:             logging.NewMessages(logger),
		now:              time.Now,
		sleepUnit:        time.Second,
		sleepLogInterval: SleepLogInterval,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.installer = installer.New(installer.Options{
		SenzingDir: cfg.SenzingDir,
		Package:    cfg.SenzingPackage,
		SourceDir:  cfg.SenzingSourceDir,
	}, a.msgs, installer.WithClock(a.now))

	a.actions = map[Subcommand]action{
		SubcommandInstall:              a.installer.Install,
		SubcommandReplace:              a.installer.Replace,
		SubcommandDelete:               a.installer.Delete,
		SubcommandCurrentVersion:       a.currentVersion,
		SubcommandPackageVersion:       a.packageVersion,
		SubcommandSleep:                a.sleep,
		SubcommandVersion:              a.version,
		SubcommandDockerAcceptanceTest: a.dockerAcceptanceTest,
	}
	return a
}

// Run executes the action for sub between Enter and Exit messages.
// Errors from the action have already been logged step by step; they are
// summarised once more and returned.
func (a *App) Run(ctx context.Context, sub Subcommand) error {
	act, ok := a.actions[sub]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSubcommand, sub)
	}
	if sub == SubcommandVersion {
		return act(ctx)
	}

	start := a.now()
	a.msgs.With(zap.Any("context", EntryContext(a.cfg, start))).Info(logging.MsgEnter, sub)

	err := act(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.msgs.Warn(logging.MsgCompletedWarnings, err, sub)
		a.msgs.Info(logging.MsgSeeErrors)
	}

	a.msgs.With(zap.Any("context", ExitContext(a.cfg, start, a.now()))).Info(logging.MsgExit, sub)
	return err
}

// EntryContext is the log context of an Enter message.
func EntryContext(cfg config.Config, start time.Time) map[string]any {
	ctx := cfg.Redacted()
	ctx["start_time"] = unixSeconds(start)
	return ctx
}

// ExitContext is the log context of an Exit message.
func ExitContext(cfg config.Config, start, stop time.Time) map[string]any {
	ctx := EntryContext(cfg, start)
	ctx["stop_time"] = unixSeconds(stop)
	ctx["elapsed_time"] = stop.Sub(start).Seconds()
	return ctx
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func (a *App) currentVersion(context.Context) error {
	// A missing or unreadable version file is a warning, already logged.
	_, _ = a.installer.CurrentVersion()
	return nil
}

func (a *App) packageVersion(context.Context) error {
	_, _ = a.installer.PackageVersion()
	return nil
}

func (a *App) version(context.Context) error {
	a.msgs.Info(logging.MsgVersion, Version, Updated)
	return nil
}

func (a *App) dockerAcceptanceTest(context.Context) error {
	a.msgs.Info(logging.MsgAcceptanceTest)
	return nil
}
