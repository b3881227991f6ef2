package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sakiengine/saki/internal/defs"
)

// FindWorkspaceRoot locates the workspace root by walking upward from start
// until it finds a directory holding both the engine and game directories, or
// a saki.yaml file. An empty start means the current working directory.
func FindWorkspaceRoot(start string, layout Layout) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}

	absDir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		if isWorkspaceRoot(absDir, layout) {
			return absDir, nil
		}
		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", fmt.Errorf("%w: no %s/ and %s/ found in %s or any parent directory",
				ErrWorkspaceNotFound, layout.EngineDir, layout.GameDir, start)
		}
		absDir = parent
	}
}

// FindWorkspaceRootOrCurrent is like FindWorkspaceRoot but falls back to the
// absolute form of start when no workspace is found.
func FindWorkspaceRootOrCurrent(start string, layout Layout) (string, error) {
	if root, err := FindWorkspaceRoot(start, layout); err == nil {
		return root, nil
	}
	if start == "" {
		return os.Getwd()
	}
	return filepath.Abs(start)
}

func isWorkspaceRoot(dir string, layout Layout) bool {
	if info, err := os.Stat(filepath.Join(dir, defs.ConfigYAML)); err == nil && !info.IsDir() {
		return true
	}
	return isDir(filepath.Join(dir, filepath.FromSlash(layout.EngineDir))) &&
		isDir(filepath.Join(dir, filepath.FromSlash(layout.GameDir)))
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
