package installer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eugenenazirov/senzing-package/internal/archive"
	"github.com/eugenenazirov/senzing-package/internal/logging"
)

// VersionFile is the build version file, relative to the Senzing directory
// and to the package archive root.
const VersionFile = "g2/data/g2BuildVersion.json"

type buildVersion struct {
	Version string `json:"VERSION"`
}

// ReadVersion decodes the VERSION field of a g2BuildVersion.json document.
func ReadVersion(r io.Reader) (string, error) {
	var v buildVersion
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return "", fmt.Errorf("decode version file: %w", err)
	}
	if strings.TrimSpace(v.Version) == "" {
		return "", ErrNoVersion
	}
	return v.Version, nil
}

// CurrentVersion reports the version installed under the Senzing directory.
// A missing file is logged as a warning and returned as an error wrapping
// fs.ErrNotExist.
func (i *Installer) CurrentVersion() (string, error) {
	path := i.versionPath()
	version, err := readVersionFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		i.msgs.Warn(logging.MsgNoVersionFile, nil, path)
	case err != nil:
		i.msgs.Warn(logging.MsgBadVersionFile, err, path)
	default:
		i.msgs.Info(logging.MsgInstalledVersion, version, path)
	}
	return version, err
}

// PackageVersion reports the version recorded inside the package archive.
func (i *Installer) PackageVersion() (string, error) {
	pkg := i.opts.Package
	data, err := archive.ReadFile(pkg, VersionFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			i.msgs.Warn(logging.MsgNoVersionFile, nil, pkg)
		} else {
			i.msgs.Warn(logging.MsgBadVersionFile, err, pkg)
		}
		return "", err
	}

	version, err := ReadVersion(bytes.NewReader(data))
	if err != nil {
		i.msgs.Warn(logging.MsgBadVersionFile, err, pkg)
		return "", err
	}
	i.msgs.Info(logging.MsgPackageVersion, version, pkg)
	return version, nil
}

func (i *Installer) versionPath() string {
	return filepath.Join(i.opts.SenzingDir, filepath.FromSlash(VersionFile))
}

func readVersionFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return ReadVersion(f)
}
