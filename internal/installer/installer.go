package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"

	"github.com/eugenenazirov/senzing-package/internal/archive"
	"github.com/eugenenazirov/senzing-package/internal/fsops"
	"github.com/eugenenazirov/senzing-package/internal/logging"
	"github.com/eugenenazirov/senzing-package/internal/progress"
)

// Targets are the directories, relative to the Senzing directory, that a
// package installs.
var Targets = []string{"g2", "db2"}

// Options locate the installation and its source.
type Options struct {
	SenzingDir string
	Package    string
	// SourceDir, when set, is copied instead of extracting Package.
	SourceDir string
}

// Installer runs the install, replace and delete sequences.
type Installer struct {
	opts Options
	msgs *logging.Messages
	now  func() time.Time
}

// Option configures an Installer.
type Option func(*Installer)

// WithClock overrides time.Now for backup names and the installation marker.
func WithClock(now func() time.Time) Option {
	return func(i *Installer) {
		i.now = now
	}
}

// New creates an Installer.
func New(opts Options, msgs *logging.Messages, options ...Option) *Installer {
	i := &Installer{
		opts: opts,
		msgs: msgs,
		now:  time.Now,
	}
	for _, opt := range options {
		opt(i)
	}
	if i.msgs == nil {
		i.msgs = logging.NewMessages(nil)
	}
	return i
}

// Install archives existing targets, installs the package and refreshes the
// installation marker.
func (i *Installer) Install(ctx context.Context) error {
	return i.install(ctx)
}

// Replace removes the installation marker, then installs as Install does.
func (i *Installer) Replace(ctx context.Context) error {
	errs := i.removeSentinel()
	return multierr.Append(errs, i.install(ctx))
}

// Delete removes the installed targets and the installation marker.
func (i *Installer) Delete(ctx context.Context) error {
	var errs error
	for _, target := range i.targetPaths() {
		if ctx.Err() != nil {
			return multierr.Append(errs, ctx.Err())
		}
		if _, err := os.Lstat(target); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			i.msgs.Warn(logging.MsgDeleteFailed, err, target)
			errs = multierr.Append(errs, &StepError{Step: StepDelete, Path: target, Err: err})
			continue
		}
		i.msgs.Info(logging.MsgDeleted, target)
	}
	return multierr.Append(errs, i.removeSentinel())
}

func (i *Installer) install(ctx context.Context) error {
	var errs error

	errs = multierr.Append(errs, i.archiveTargets())
	if ctx.Err() != nil {
		return multierr.Append(errs, ctx.Err())
	}

	populateErr := i.populate()
	errs = multierr.Append(errs, populateErr)
	if ctx.Err() != nil {
		return multierr.Append(errs, ctx.Err())
	}

	errs = multierr.Append(errs, i.fixOwnership())

	// No marker unless the tree was populated.
	if populateErr == nil {
		errs = multierr.Append(errs, i.writeSentinel())
	}
	return errs
}

// populate extracts the package, or copies the source tree when configured.
func (i *Installer) populate() error {
	dest := i.opts.SenzingDir

	if src := i.opts.SourceDir; src != "" {
		reporter := progress.New("copy", i.msgs)
		stats, err := fsops.CopyTree(src, dest, reporter.Observe)
		if err != nil {
			i.msgs.Warn(logging.MsgCopyFailed, err, src, dest)
			return &StepError{Step: StepCopy, Path: src, Err: err}
		}
		if err := i.checkPopulated(); err != nil {
			i.msgs.Warn(logging.MsgCopyFailed, err, src, dest)
			return &StepError{Step: StepCopy, Path: src, Err: err}
		}
		i.msgs.Info(logging.MsgCopied, src, dest, stats.Files, humanize.Bytes(uint64(stats.Bytes)))
		return nil
	}

	pkg := i.opts.Package
	reporter := progress.New("extract", i.msgs)
	stats, err := archive.Extract(pkg, dest, reporter.Observe)
	if err != nil {
		i.msgs.Warn(logging.MsgExtractFailed, err, pkg, dest)
		return &StepError{Step: StepExtract, Path: pkg, Err: err}
	}
	if err := i.checkPopulated(); err != nil {
		i.msgs.Warn(logging.MsgExtractFailed, err, pkg, dest)
		return &StepError{Step: StepExtract, Path: pkg, Err: err}
	}
	i.msgs.Info(logging.MsgExtracted, pkg, dest, stats.Files, humanize.Bytes(uint64(stats.Bytes)))
	return nil
}

// checkPopulated requires the primary target to exist as a directory.
func (i *Installer) checkPopulated() error {
	g2 := filepath.Join(i.opts.SenzingDir, Targets[0])
	info, err := os.Stat(g2)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrIncomplete, g2)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrIncomplete, g2)
	}
	return nil
}

func (i *Installer) fixOwnership() error {
	root := i.opts.SenzingDir
	reporter := progress.New("chown", i.msgs)
	count, owner, err := fsops.ChownTree(root, reporter.Observe)
	if err != nil {
		i.msgs.Warn(logging.MsgOwnershipFailed, err, root)
		return &StepError{Step: StepChown, Path: root, Err: err}
	}
	i.msgs.Info(logging.MsgOwnership, count, root, owner.UID, owner.GID)
	return nil
}

func (i *Installer) targetPaths() []string {
	paths := make([]string, 0, len(Targets))
	for _, t := range Targets {
		paths = append(paths, filepath.Join(i.opts.SenzingDir, t))
	}
	return paths
}
