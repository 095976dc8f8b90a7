package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func buildTree(t *testing.T, root string) {
	t.Helper()

	files := map[string]string{
		"g2/data/g2BuildVersion.json": `{"VERSION": "1.0.0"}`,
		"g2/lib/libG2.so.1":           "binary",
		"db2/readme.txt":              "db2",
	}
	for rel, body := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Chmod(filepath.Join(root, "g2/lib/libG2.so.1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("libG2.so.1", filepath.Join(root, "g2/lib/libG2.so")); err != nil {
		t.Fatal(err)
	}
}

func TestCopyTree(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "senzing")
	buildTree(t, src)

	observed := 0
	stats, err := CopyTree(src, dst, func(string) { observed++ })
	if err != nil {
		t.Fatalf("CopyTree returned error: %v", err)
	}

	// root, g2, g2/data, g2/lib, db2
	if stats.Dirs != 5 || stats.Files != 3 || stats.Links != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if observed != stats.Dirs+stats.Files+stats.Links {
		t.Fatalf("expected %d observations, got %d", stats.Dirs+stats.Files+stats.Links, observed)
	}

	data, err := os.ReadFile(filepath.Join(dst, "g2/data/g2BuildVersion.json"))
	if err != nil || string(data) != `{"VERSION": "1.0.0"}` {
		t.Fatalf("unexpected copy: %q (%v)", data, err)
	}
	info, err := os.Stat(filepath.Join(dst, "g2/lib/libG2.so.1"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected mode preserved, got %s", info.Mode())
	}
	if link, err := os.Readlink(filepath.Join(dst, "g2/lib/libG2.so")); err != nil || link != "libG2.so.1" {
		t.Fatalf("unexpected link: %q (%v)", link, err)
	}

	// Copying again over an existing tree succeeds.
	if _, err := CopyTree(src, dst, nil); err != nil {
		t.Fatalf("second CopyTree returned error: %v", err)
	}
}

func TestCopyTreeRejectsFile(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := CopyTree(file, t.TempDir(), nil); !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
	if _, err := CopyTree(filepath.Join(t.TempDir(), "missing"), t.TempDir(), nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestChownTree(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("numeric ownership is not available on windows")
	}
	t.Parallel()
	root := t.TempDir()
	buildTree(t, root)

	count, owner, err := ChownTree(root, nil)
	if err != nil {
		t.Fatalf("ChownTree returned error: %v", err)
	}
	// g2, g2/data, g2/lib, db2 plus three files and one link.
	if count != 8 {
		t.Fatalf("expected 8 entries, got %d", count)
	}

	rootOwner, ok, err := OwnerOf(root)
	if err != nil || !ok {
		t.Fatalf("OwnerOf returned %v (%v)", err, ok)
	}
	if owner != rootOwner {
		t.Fatalf("expected owner %+v, got %+v", rootOwner, owner)
	}

	fileOwner, _, err := OwnerOf(filepath.Join(root, "g2/lib/libG2.so"))
	if err != nil {
		t.Fatal(err)
	}
	if fileOwner != rootOwner {
		t.Fatalf("expected link owner %+v, got %+v", rootOwner, fileOwner)
	}
}

func TestChownTreeMissingRoot(t *testing.T) {
	t.Parallel()
	if _, _, err := ChownTree(filepath.Join(t.TempDir(), "missing"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}
