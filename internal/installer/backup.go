package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/multierr"

	"github.com/eugenenazirov/senzing-package/internal/logging"
)

// BackupName returns the name an existing target is moved to:
// <target>-<version>.<unix seconds>, or <target>.<unix seconds> when the
// version is unknown.
func BackupName(target, version string, unix int64) string {
	if version != "" {
		return fmt.Sprintf("%s-%s.%d", target, version, unix)
	}
	return fmt.Sprintf("%s.%d", target, unix)
}

// archiveTargets renames every existing target aside. The senzing directory
// itself is left in place since it may be a mounted volume.
func (i *Installer) archiveTargets() error {
	var existing []string
	for _, target := range i.targetPaths() {
		if _, err := os.Lstat(target); err == nil {
			existing = append(existing, target)
		} else if !errors.Is(err, fs.ErrNotExist) {
			i.msgs.Warn(logging.MsgArchiveFailed, err, target, "")
			return &StepError{Step: StepArchive, Path: target, Err: err}
		}
	}
	if len(existing) == 0 {
		return nil
	}

	version, _ := i.CurrentVersion()
	stamp := i.now().Unix()

	var errs error
	for _, target := range existing {
		backup := BackupName(target, version, stamp)
		if err := os.Rename(target, backup); err != nil {
			i.msgs.Warn(logging.MsgArchiveFailed, err, target, backup)
			errs = multierr.Append(errs, &StepError{Step: StepArchive, Path: target, Err: err})
			continue
		}
		i.msgs.Info(logging.MsgArchived, target, backup)
	}
	return errs
}
