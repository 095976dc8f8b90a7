package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// confineRelPath joins root and relTarget, refusing results that are not
// physically underneath root. Existing symlinked ancestors are resolved so a
// previously extracted link cannot redirect later entries.
func confineRelPath(root, relTarget string) (string, error) {
	if strings.Contains(relTarget, "\\") {
		return "", fmt.Errorf("%w: backslash in %q", ErrUnsafePath, relTarget)
	}

	cleanRel := filepath.Clean(filepath.FromSlash(relTarget))
	if filepath.IsAbs(cleanRel) {
		return "", fmt.Errorf("%w: absolute path %q", ErrUnsafePath, relTarget)
	}
	if escapes(cleanRel) {
		return "", fmt.Errorf("%w: traversal in %q", ErrUnsafePath, relTarget)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root path: %w", err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}

	fullPath := filepath.Join(realRoot, cleanRel)
	if err := checkAncestors(realRoot, filepath.Dir(fullPath)); err != nil {
		return "", err
	}
	return fullPath, nil
}

// confineLinkTarget checks that a symlink named name (relative to the archive
// root) pointing at linkname stays inside the archive root.
func confineLinkTarget(name, linkname string) error {
	if filepath.IsAbs(linkname) || strings.HasPrefix(linkname, "/") {
		return fmt.Errorf("%w: absolute link target %q", ErrUnsafePath, linkname)
	}
	resolved := filepath.Clean(filepath.Join(filepath.Dir(filepath.FromSlash(name)), filepath.FromSlash(linkname)))
	if escapes(resolved) {
		return fmt.Errorf("%w: link %q -> %q", ErrUnsafePath, name, linkname)
	}
	return nil
}

func escapes(cleanRel string) bool {
	return cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator))
}

// checkAncestors resolves the deepest existing ancestor of dir and verifies it
// is still within realRoot.
func checkAncestors(realRoot, dir string) error {
	for current := dir; ; current = filepath.Dir(current) {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			if !within(realRoot, resolved) {
				return fmt.Errorf("%w: %q resolves outside destination", ErrUnsafePath, dir)
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if parent := filepath.Dir(current); parent == current {
			return nil
		}
	}
}

func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel == "." || !escapes(rel)
}

func removeExisting(target string) error {
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
