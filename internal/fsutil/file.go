package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"github.com/sakiengine/saki/internal/defs"
)

// Exists reports whether name exists. Stat errors other than not-exist are
// treated as absent.
func Exists(fsys billy.Filesystem, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// IsDir reports whether name exists and is a directory.
func IsDir(fsys billy.Filesystem, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}

// IsFile reports whether name exists and is a regular file.
func IsFile(fsys billy.Filesystem, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// CopyFile copies a single regular file, creating dst's parent directories and
// preserving the source permission bits.
func CopyFile(fsys billy.Filesystem, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	perm := defs.FilePerm
	if info, statErr := fsys.Stat(src); statErr == nil {
		perm = info.Mode().Perm()
	}

	if err := fsys.MkdirAll(parentDir(dst), defs.DirPerm); err != nil {
		return err
	}
	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// maxLinkDepth bounds how many directory levels CopyTree descends, so a
// symlink pointing at one of its own ancestors cannot recurse forever.
const maxLinkDepth = 64

// ErrUnsupportedFile is returned by CopyTree for entries that are neither
// directories, regular files nor symlinks to either.
var ErrUnsupportedFile = errors.New("fsutil: unsupported file type")

// CopyTree recursively copies the directory src to dst. Directories are
// created on demand and symbolic links are followed, so the copy holds the
// link targets' contents. It returns the number of files and directories
// copied and stops at the first error.
func CopyTree(fsys billy.Filesystem, src, dst string) (files int, dirs int, err error) {
	return copyTree(fsys, src, dst, 0)
}

func copyTree(fsys billy.Filesystem, src, dst string, depth int) (files int, dirs int, err error) {
	if depth > maxLinkDepth {
		return files, dirs, fmt.Errorf("copy %s: directory nesting exceeds %d levels", src, maxLinkDepth)
	}
	if err := fsys.MkdirAll(dst, defs.DirPerm); err != nil {
		return files, dirs, err
	}
	entries, err := fsys.ReadDir(src)
	if err != nil {
		return files, dirs, err
	}
	for _, entry := range entries {
		from := fsys.Join(src, entry.Name())
		to := fsys.Join(dst, entry.Name())
		mode := entry.Mode()
		if mode&fs.ModeSymlink != 0 {
			target, err := fsys.Stat(from)
			if err != nil {
				return files, dirs, fmt.Errorf("follow link %s: %w", from, err)
			}
			mode = target.Mode()
		}
		switch {
		case mode.IsDir():
			f, d, err := copyTree(fsys, from, to, depth+1)
			files += f
			dirs += d + 1
			if err != nil {
				return files, dirs, err
			}
		case mode.IsRegular():
			if err := CopyFile(fsys, from, to); err != nil {
				return files, dirs, err
			}
			files++
		default:
			return files, dirs, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFile, from, mode.Type())
		}
	}
	return files, dirs, nil
}

// WriteFileAtomic writes data to a temp file beside name and renames it over
// name, so readers never observe a partially written file.
func WriteFileAtomic(fsys billy.Filesystem, name string, data []byte, perm fs.FileMode) error {
	dir := parentDir(name)
	if err := fsys.MkdirAll(dir, defs.DirPerm); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	tmp, err := fsys.TempFile(dir, ".saki-tmp-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if chmodder, ok := fsys.(billy.Change); ok {
		_ = chmodder.Chmod(tmpName, perm)
	}
	if err := fsys.Rename(tmpName, name); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// IsNotExist reports whether err means a path is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parentDir(name string) string {
	return filepath.Dir(name)
}
