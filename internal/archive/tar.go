package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type extractor struct {
	dest    string
	observe ObserveFunc
	stats   Stats
}

type tarStream struct {
	*tar.Reader
	closers []io.Closer
}

func (t *tarStream) Close() error {
	var first error
	for i := len(t.closers) - 1; i >= 0; i-- {
		if err := t.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openTar(filename string, gzipped bool) (*tarStream, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	stream := &tarStream{closers: []io.Closer{f}}

	var r io.Reader = f
	if gzipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		stream.closers = append(stream.closers, gz)
		r = gz
	}
	stream.Reader = tar.NewReader(r)
	return stream, nil
}

func (x *extractor) tar(filename string, gzipped bool) error {
	tr, err := openTar(filename, gzipped)
	if err != nil {
		return err
	}
	defer tr.Close()

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}
		if err := x.tarEntry(tr.Reader, header); err != nil {
			return err
		}
	}
}

func (x *extractor) tarEntry(r io.Reader, header *tar.Header) error {
	if err := checkEntryName(header.Name); err != nil {
		return err
	}
	name := entryName(header.Name)
	if name == "." {
		return nil
	}

	target, err := confineRelPath(x.dest, name)
	if err != nil {
		return err
	}
	mode := fs.FileMode(header.Mode).Perm()

	switch header.Typeflag {
	case tar.TypeDir:
		if err := x.mkdir(target, mode); err != nil {
			return err
		}
	case tar.TypeReg:
		if err := x.writeFile(target, r, mode); err != nil {
			return err
		}
	case tar.TypeSymlink:
		if err := confineLinkTarget(name, header.Linkname); err != nil {
			return err
		}
		if err := x.symlink(header.Linkname, target); err != nil {
			return err
		}
	case tar.TypeLink:
		source, err := confineRelPath(x.dest, entryName(header.Linkname))
		if err != nil {
			return err
		}
		if err := x.hardlink(source, target); err != nil {
			return err
		}
	case tar.TypeXGlobalHeader, tar.TypeXHeader:
		return nil
	default:
		return fmt.Errorf("%w: %q has type %q", ErrUnsupportedEntry, header.Name, header.Typeflag)
	}

	x.observe(target)
	return nil
}

func (x *extractor) mkdir(target string, mode fs.FileMode) error {
	if err := os.MkdirAll(target, mode|0o700); err != nil {
		return fmt.Errorf("create directory %s: %w", target, err)
	}
	if err := os.Chmod(target, mode|0o700); err != nil {
		return fmt.Errorf("chmod %s: %w", target, err)
	}
	x.stats.Dirs++
	return nil
}

func (x *extractor) writeFile(target string, r io.Reader, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", target, err)
	}
	// Replace rather than follow a link already sitting at target.
	if err := removeExisting(target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	n, err := io.Copy(out, r)
	if err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	if err := os.Chmod(target, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", target, err)
	}

	x.stats.Files++
	x.stats.Bytes += n
	return nil
}

func (x *extractor) symlink(linkname, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", target, err)
	}
	if err := removeExisting(target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	if err := os.Symlink(linkname, target); err != nil {
		return fmt.Errorf("symlink %s: %w", target, err)
	}
	x.stats.Links++
	return nil
}

func (x *extractor) hardlink(source, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", target, err)
	}
	if err := removeExisting(target); err != nil {
		return fmt.Errorf("replace %s: %w", target, err)
	}
	if err := os.Link(source, target); err != nil {
		return fmt.Errorf("link %s: %w", target, err)
	}
	x.stats.Links++
	return nil
}

func readTarEntry(filename, want string, gzipped bool) ([]byte, error) {
	tr, err := openTar(filename, gzipped)
	if err != nil {
		return nil, err
	}
	defer tr.Close()

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s in %s: %w", want, filename, fs.ErrNotExist)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar entry: %w", err)
		}
		if header.Typeflag == tar.TypeReg && entryName(header.Name) == want {
			return io.ReadAll(tr)
		}
	}
}
