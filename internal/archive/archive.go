package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

var (
	// ErrUnsafePath is returned when an entry or link target would land outside the destination.
	ErrUnsafePath = errors.New("archive entry escapes destination")
	// ErrUnsupportedEntry is returned for entry types that cannot be materialised.
	ErrUnsupportedEntry = errors.New("unsupported archive entry")
	// ErrEmpty is returned when an archive holds no entries at all.
	ErrEmpty = errors.New("archive has no entries")
)

// Format identifies the container format of a package file.
type Format int

const (
	FormatTar Format = iota
	FormatTarGzip
	FormatZip
)

func (f Format) String() string {
	switch f {
	case FormatTarGzip:
		return "tar.gz"
	case FormatZip:
		return "zip"
	default:
		return "tar"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zipMagic  = []byte("PK\x03\x04")
)

// Stats summarises an extraction.
type Stats struct {
	Files int
	Dirs  int
	Links int
	Bytes int64
}

// ObserveFunc is called with the destination path of each materialised entry.
type ObserveFunc func(path string)

// Detect sniffs the format of the file at path from its leading bytes.
func Detect(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	head := make([]byte, len(zipMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read header: %w", err)
	}
	return detectBytes(head[:n]), nil
}

func detectBytes(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return FormatTarGzip
	case bytes.HasPrefix(head, zipMagic):
		return FormatZip
	default:
		return FormatTar
	}
}

// Extract unpacks the archive at filename into dest. dest is created if needed.
func Extract(filename, dest string, observe ObserveFunc) (Stats, error) {
	format, err := Detect(filename)
	if err != nil {
		return Stats{}, err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create destination: %w", err)
	}
	if observe == nil {
		observe = func(string) {}
	}

	x := &extractor{dest: dest, observe: observe}
	switch format {
	case FormatZip:
		err = x.zip(filename)
	default:
		err = x.tar(filename, format == FormatTarGzip)
	}
	if err == nil && x.stats.Files+x.stats.Dirs+x.stats.Links == 0 {
		err = fmt.Errorf("%w: %s", ErrEmpty, filename)
	}
	return x.stats, err
}

// ReadFile returns the contents of the entry called name inside the archive
// at filename. A missing entry yields an error wrapping fs.ErrNotExist.
func ReadFile(filename, name string) ([]byte, error) {
	format, err := Detect(filename)
	if err != nil {
		return nil, err
	}
	want := entryName(name)
	switch format {
	case FormatZip:
		return readZipEntry(filename, want)
	default:
		return readTarEntry(filename, want, format == FormatTarGzip)
	}
}

func checkEntryName(name string) error {
	if path.IsAbs(name) {
		return fmt.Errorf("%w: absolute path %q", ErrUnsafePath, name)
	}
	return nil
}

// entryName normalises an archive entry name for comparison.
func entryName(name string) string {
	name = strings.TrimPrefix(name, "./")
	name = path.Clean(strings.TrimPrefix(name, "/"))
	return name
}
