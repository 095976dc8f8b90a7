package installer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eugenenazirov/senzing-package/internal/logging"
)

func TestReadVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid", input: `{"VERSION": "1.10.19079", "BUILD_NUMBER": "2019_03_20__02_00"}`, want: "1.10.19079"},
		{name: "missing field", input: `{"BUILD_NUMBER": "x"}`, wantErr: true},
		{name: "malformed", input: `{"VERSION":`, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadVersion(strings.NewReader(tc.input))
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error=%t, got %v", tc.wantErr, err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}

	if _, err := ReadVersion(strings.NewReader(`{}`)); !errors.Is(err, ErrNoVersion) {
		t.Fatalf("expected ErrNoVersion, got %v", err)
	}
}

func TestCurrentVersion(t *testing.T) {
	t.Parallel()

	t.Run("present", func(t *testing.T) {
		f := newFixture(t)
		writeFile(t, filepath.Join(f.senzingDir, "g2", "data", "g2BuildVersion.json"), `{"VERSION": "1.10.0"}`)

		got, err := f.installer.CurrentVersion()
		if err != nil || got != "1.10.0" {
			t.Fatalf("unexpected result: %q (%v)", got, err)
		}
		if !f.hasMessage(logging.MsgInstalledVersion) {
			t.Fatalf("expected version message")
		}
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		if _, err := f.installer.CurrentVersion(); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected ErrNotExist, got %v", err)
		}
		if !f.hasMessage(logging.MsgNoVersionFile) {
			t.Fatalf("expected missing version warning")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		f := newFixture(t)
		writeFile(t, filepath.Join(f.senzingDir, "g2", "data", "g2BuildVersion.json"), `not json`)

		if _, err := f.installer.CurrentVersion(); err == nil {
			t.Fatalf("expected error for malformed file")
		}
		if !f.hasMessage(logging.MsgBadVersionFile) {
			t.Fatalf("expected bad version warning")
		}
	})
}

func TestPackageVersion(t *testing.T) {
	t.Parallel()

	t.Run("present", func(t *testing.T) {
		f := newFixture(t)

		got, err := f.installer.PackageVersion()
		if err != nil || got != "2.0.0" {
			t.Fatalf("unexpected result: %q (%v)", got, err)
		}
		if !f.hasMessage(logging.MsgPackageVersion) {
			t.Fatalf("expected package version message")
		}
	})

	t.Run("archive without version file", func(t *testing.T) {
		f := newFixture(t)
		writePackage(t, f.pkg, map[string]string{"g2/other.txt": "x"})

		if _, err := f.installer.PackageVersion(); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected ErrNotExist, got %v", err)
		}
		if !f.hasMessage(logging.MsgNoVersionFile) {
			t.Fatalf("expected missing version warning")
		}
	})

	t.Run("missing archive", func(t *testing.T) {
		f := newFixture(t)
		if err := os.Remove(f.pkg); err != nil {
			t.Fatal(err)
		}

		if _, err := f.installer.PackageVersion(); !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected ErrNotExist, got %v", err)
		}
	})

	t.Run("corrupt archive", func(t *testing.T) {
		f := newFixture(t)
		if err := os.WriteFile(f.pkg, []byte{0x1f, 0x8b, 0x00, 0x01}, 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := f.installer.PackageVersion(); err == nil {
			t.Fatalf("expected error for corrupt archive")
		}
		if !f.hasMessage(logging.MsgBadVersionFile) {
			t.Fatalf("expected bad version warning")
		}
	})
}
