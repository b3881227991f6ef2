// Package fsutil holds small filesystem helpers shared by the sync and
// manifest packages. Every helper works on a billy.Filesystem so callers can
// run against the real workspace or an in-memory tree.
package fsutil

import (
	"iter"
	"path"
	"slices"

	"github.com/go-git/go-billy/v5"
)

// WalkDirs returns a lazily evaluated sequence of every directory below root,
// at any depth. Yielded paths are relative to root and use forward slashes.
// Directories that cannot be read are skipped without error, and symbolic
// links are never followed. The sequence may be ranged over more than once;
// each range re-reads the tree.
func WalkDirs(fsys billy.Filesystem, root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		walkDirs(fsys, root, "", yield)
	}
}

func walkDirs(fsys billy.Filesystem, root, rel string, yield func(string) bool) bool {
	dir := root
	if rel != "" {
		dir = fsys.Join(root, rel)
	}
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return true
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		child := path.Join(rel, entry.Name())
		if !yield(child) {
			return false
		}
		if !walkDirs(fsys, root, child, yield) {
			return false
		}
	}
	return true
}

// Dirs collects WalkDirs and sorts the result lexicographically by byte value.
// A missing root yields an empty, non-nil slice.
func Dirs(fsys billy.Filesystem, root string) []string {
	dirs := slices.Collect(WalkDirs(fsys, root))
	if dirs == nil {
		return []string{}
	}
	slices.Sort(dirs)
	return dirs
}
