package fsutil

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

func TestCopyTree(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	if err := util.WriteFile(fsys, "src/a.txt", []byte("alpha"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := util.WriteFile(fsys, "src/sub/deep/b.txt", []byte("beta"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := fsys.MkdirAll("src/empty", 0o755); err != nil {
		t.Fatal(err)
	}

	files, dirs, err := CopyTree(fsys, "src", "dst")
	if err != nil {
		t.Fatalf("CopyTree() error: %v", err)
	}
	if files != 2 {
		t.Errorf("files = %d, want 2", files)
	}
	if dirs != 3 {
		t.Errorf("dirs = %d, want 3", dirs)
	}

	got, err := util.ReadFile(fsys, "dst/sub/deep/b.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "beta" {
		t.Errorf("copied content = %q, want %q", got, "beta")
	}
	if !IsDir(fsys, "dst/empty") {
		t.Error("empty directory was not copied")
	}
}

func TestCopyTreeFollowsSymlinks(t *testing.T) {
	t.Parallel()

	fsys := osfs.New(t.TempDir())
	if err := util.WriteFile(fsys, "shared/bg.png", []byte("png"), 0o640); err != nil {
		t.Fatal(err)
	}
	if err := util.WriteFile(fsys, "shared/set/a.sks", []byte("label"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fsys.MkdirAll("src", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Symlink("../shared/bg.png", "src/bg.png"); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Symlink("../shared/set", "src/set"); err != nil {
		t.Fatal(err)
	}

	files, dirs, err := CopyTree(fsys, "src", "dst")
	if err != nil {
		t.Fatalf("CopyTree() error: %v", err)
	}
	if files != 2 || dirs != 1 {
		t.Errorf("files, dirs = %d, %d, want 2, 1", files, dirs)
	}

	got, err := util.ReadFile(fsys, "dst/bg.png")
	if err != nil || string(got) != "png" {
		t.Errorf("linked file copy = %q, %v", got, err)
	}
	info, err := fsys.Lstat("dst/bg.png")
	if err != nil {
		t.Fatal(err)
	}
	if !info.Mode().IsRegular() || info.Mode().Perm() != 0o640 {
		t.Errorf("dst/bg.png mode = %v, want a regular file with the target's permissions", info.Mode())
	}
	if !IsFile(fsys, "dst/set/a.sks") {
		t.Error("linked directory contents were not copied")
	}
}

func TestCopyTreeSymlinkLoop(t *testing.T) {
	t.Parallel()

	fsys := osfs.New(t.TempDir())
	if err := fsys.MkdirAll("src", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Symlink(".", "src/loop"); err != nil {
		t.Fatal(err)
	}

	// Either the nesting limit or the kernel's link limit ends the walk.
	_, _, err := CopyTree(fsys, "src", "dst")
	if err == nil {
		t.Fatal("CopyTree() should fail on a link to its own ancestor")
	}
}

func TestCopyTreeDanglingSymlink(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	if err := fsys.MkdirAll("src", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := fsys.Symlink("gone.png", "src/bg.png"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := CopyTree(fsys, "src", "dst"); !IsNotExist(err) {
		t.Fatalf("CopyTree() error = %v, want a not-exist error for the missing target", err)
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	t.Parallel()

	_, _, err := CopyTree(memfs.New(), "missing", "dst")
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if !IsNotExist(err) {
		t.Errorf("expected not-exist error, got: %v", err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	if err := util.WriteFile(fsys, "dir/out.txt", []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(fsys, "dir/out.txt", []byte("new"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic() error: %v", err)
	}

	got, err := util.ReadFile(fsys, "dir/out.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}

	entries, err := fsys.ReadDir("dir")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected temp file to be renamed away, dir has %d entries", len(entries))
	}
}

func TestExistsHelpers(t *testing.T) {
	t.Parallel()

	fsys := memfs.New()
	if err := util.WriteFile(fsys, "d/f", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		path          string
		exists, isDir bool
		isFile        bool
	}{
		{"file", "d/f", true, false, true},
		{"dir", "d", true, true, false},
		{"missing", "nope", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Exists(fsys, tt.path); got != tt.exists {
				t.Errorf("Exists(%q) = %v, want %v", tt.path, got, tt.exists)
			}
			if got := IsDir(fsys, tt.path); got != tt.isDir {
				t.Errorf("IsDir(%q) = %v, want %v", tt.path, got, tt.isDir)
			}
			if got := IsFile(fsys, tt.path); got != tt.isFile {
				t.Errorf("IsFile(%q) = %v, want %v", tt.path, got, tt.isFile)
			}
		})
	}
}
