package fsops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotDirectory is returned when a tree operation is pointed at a non-directory.
var ErrNotDirectory = errors.New("not a directory")

// CopyStats summarises a CopyTree call.
type CopyStats struct {
	Files int
	Dirs  int
	Links int
	Bytes int64
}

// Owner is a numeric uid/gid pair.
type Owner struct {
	UID int
	GID int
}

// CopyTree copies the directory tree at src into dst, merging with anything
// already present. File modes and symlinks are preserved.
func CopyTree(src, dst string, observe func(path string)) (CopyStats, error) {
	var stats CopyStats
	if observe == nil {
		observe = func(string) {}
	}

	info, err := os.Stat(src)
	if err != nil {
		return stats, err
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("%s: %w", src, ErrNotDirectory)
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return err
			}
			stats.Dirs++
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if err := os.Symlink(link, target); err != nil {
				return err
			}
			stats.Links++
		case info.Mode().IsRegular():
			n, err := copyFile(path, target, info.Mode().Perm())
			if err != nil {
				return err
			}
			stats.Files++
			stats.Bytes += n
		default:
			// Sockets, devices and pipes are not part of a package tree.
			return nil
		}

		observe(target)
		return nil
	})
	return stats, err
}

func copyFile(src, dst string, mode fs.FileMode) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, err
	}
	if err := out.Close(); err != nil {
		return n, err
	}
	return n, os.Chmod(dst, mode)
}

// ChownTree changes the owner of every entry below root to root's own owner.
// Symlinks are changed themselves, not their targets. It returns the number of
// entries changed and the owner applied.
func ChownTree(root string, observe func(path string)) (int, Owner, error) {
	if observe == nil {
		observe = func(string) {}
	}

	info, err := os.Stat(root)
	if err != nil {
		return 0, Owner{}, err
	}
	if !info.IsDir() {
		return 0, Owner{}, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}
	owner, ok := ownerOf(info)
	if !ok {
		return 0, Owner{}, nil
	}

	count := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if err := lchown(path, owner); err != nil {
			return err
		}
		count++
		observe(path)
		return nil
	})
	return count, owner, err
}

// OwnerOf reports the owner of path. ok is false on platforms without
// numeric ownership.
func OwnerOf(path string) (Owner, bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Owner{}, false, err
	}
	owner, ok := ownerOf(info)
	return owner, ok, nil
}
