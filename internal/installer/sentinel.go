package installer

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/eugenenazirov/senzing-package/internal/logging"
)

// SentinelName is the installation marker, relative to the Senzing directory.
const SentinelName = ".senzing-package-installed"

// Marker is the content of the installation marker.
type Marker struct {
	Version     string    `json:"version,omitempty"`
	InstalledAt time.Time `json:"installedAt"`
	Source      string    `json:"package"`
}

// ReadMarker loads the installation marker under senzingDir.
func ReadMarker(senzingDir string) (Marker, error) {
	var m Marker
	data, err := os.ReadFile(filepath.Join(senzingDir, SentinelName))
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(data, &m)
	return m, err
}

func (i *Installer) sentinelPath() string {
	return filepath.Join(i.opts.SenzingDir, SentinelName)
}

func (i *Installer) writeSentinel() error {
	path := i.sentinelPath()

	source := i.opts.Package
	if i.opts.SourceDir != "" {
		source = i.opts.SourceDir
	}
	version, _ := readVersionFile(i.versionPath())

	data, err := json.Marshal(Marker{
		Version:     version,
		InstalledAt: i.now().UTC(),
		Source:      source,
	})
	if err == nil {
		err = renameio.WriteFile(path, data, 0o644)
	}
	if err != nil {
		i.msgs.Warn(logging.MsgSentinelFailed, err, path)
		return &StepError{Step: StepSentinel, Path: path, Err: err}
	}
	i.msgs.Info(logging.MsgSentinelWritten, path)
	return nil
}

func (i *Installer) removeSentinel() error {
	path := i.sentinelPath()
	err := os.Remove(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		i.msgs.Warn(logging.MsgSentinelRmFailed, err, path)
		return &StepError{Step: StepSentinel, Path: path, Err: err}
	}
	i.msgs.Info(logging.MsgSentinelRemoved, path)
	return nil
}
