package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

func (x *extractor) zip(filename string) error {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if err := x.zipEntry(f); err != nil {
			return err
		}
	}
	return nil
}

func (x *extractor) zipEntry(f *zip.File) error {
	if err := checkEntryName(f.Name); err != nil {
		return err
	}
	name := entryName(f.Name)
	if name == "." {
		return nil
	}

	target, err := confineRelPath(x.dest, name)
	if err != nil {
		return err
	}
	info := f.FileInfo()
	mode := info.Mode()

	switch {
	case info.IsDir():
		if err := x.mkdir(target, mode.Perm()); err != nil {
			return err
		}
	case mode&fs.ModeSymlink != 0:
		linkname, err := readZipFile(f)
		if err != nil {
			return err
		}
		link := strings.TrimSpace(string(linkname))
		if err := confineLinkTarget(name, link); err != nil {
			return err
		}
		if err := x.symlink(link, target); err != nil {
			return err
		}
	case mode.IsRegular():
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", f.Name, err)
		}
		err = x.writeFile(target, rc, mode.Perm())
		rc.Close()
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q has mode %s", ErrUnsupportedEntry, f.Name, mode)
	}

	x.observe(target)
	return nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func readZipEntry(filename, want string) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().Mode().IsRegular() && entryName(f.Name) == want {
			return readZipFile(f)
		}
	}
	return nil, fmt.Errorf("%s in %s: %w", want, filename, fs.ErrNotExist)
}
