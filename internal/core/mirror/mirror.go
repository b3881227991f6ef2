// Package mirror copies a content project's asset and script trees into the
// engine asset root so that the engine always sees exactly one project.
package mirror

import (
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/sakiengine/saki/internal/core/project"
	"github.com/sakiengine/saki/internal/defs"
	"github.com/sakiengine/saki/internal/fsutil"
)

// IconSource records where the mirrored icon came from.
type IconSource int

// Icon sources, in fallback order.
const (
	IconMissing IconSource = iota
	IconProject
	IconWorkspace
)

// String implements fmt.Stringer.
func (s IconSource) String() string {
	switch s {
	case IconProject:
		return "project"
	case IconWorkspace:
		return "workspace"
	default:
		return "missing"
	}
}

// Result summarizes one sync pass.
type Result struct {
	CopiedFiles int
	CopiedDirs  int
	Icon        IconSource
	Warnings    []error
}

// Synchronizer mirrors content projects into the engine asset root. The
// filesystem is rooted at the workspace; all paths are relative to it.
type Synchronizer struct {
	fs     billy.Filesystem
	logger *slog.Logger
}

// NewSynchronizer creates a Synchronizer over the workspace filesystem.
func NewSynchronizer(fsys billy.Filesystem, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Synchronizer{fs: fsys, logger: logger}
}

// Sync replaces engineAssetRoot/Assets and engineAssetRoot/GameScript with
// copies of the project's trees, copies the active project marker, and
// installs the launcher icon. A missing icon is reported in Result.Warnings;
// every other failure aborts the pass and wraps ErrFilesystem.
func (s *Synchronizer) Sync(engineAssetRoot string, p project.ContentProject) (*Result, error) {
	assetsDst := path.Join(engineAssetRoot, defs.AssetsSubdir)
	scriptDst := path.Join(engineAssetRoot, defs.ScriptSubdir)

	for _, dst := range []string{assetsDst, scriptDst} {
		if err := util.RemoveAll(s.fs, dst); err != nil {
			return nil, fsError("remove", dst, err)
		}
	}
	if err := s.fs.MkdirAll(engineAssetRoot, defs.DirPerm); err != nil {
		return nil, fsError("create", engineAssetRoot, err)
	}

	result := &Result{}
	for _, tree := range []struct{ src, dst string }{
		{p.AssetsDir(), assetsDst},
		{p.ScriptDir(), scriptDst},
	} {
		if !fsutil.IsDir(s.fs, tree.src) {
			s.logger.Debug("source tree absent, skipping", "src", tree.src)
			continue
		}
		files, dirs, err := fsutil.CopyTree(s.fs, tree.src, tree.dst)
		result.CopiedFiles += files
		result.CopiedDirs += dirs
		if err != nil {
			return nil, fsError("copy", tree.src, err)
		}
		s.logger.Debug("tree mirrored", "src", tree.src, "dst", tree.dst, "files", files, "dirs", dirs)
	}

	if fsutil.IsFile(s.fs, defs.ActiveMarkerTxt) {
		dst := path.Join(engineAssetRoot, defs.ActiveMarkerTxt)
		if err := fsutil.CopyFile(s.fs, defs.ActiveMarkerTxt, dst); err != nil {
			return nil, fsError("copy", defs.ActiveMarkerTxt, err)
		}
		result.CopiedFiles++
	}

	icon, err := s.copyIcon(engineAssetRoot, p)
	if err != nil {
		return nil, err
	}
	result.Icon = icon
	if icon == IconMissing {
		result.Warnings = append(result.Warnings, ErrMissingIcon)
		s.logger.Warn("no icon found", "project", p.Name)
	}

	s.logger.Info("project mirrored",
		"project", p.Name,
		"files", result.CopiedFiles,
		"dirs", result.CopiedDirs,
		"icon", result.Icon,
	)
	return result, nil
}

// copyIcon installs the project icon, falling back to the workspace icon.
// When neither exists the destination is left untouched.
func (s *Synchronizer) copyIcon(engineAssetRoot string, p project.ContentProject) (IconSource, error) {
	dst := path.Join(engineAssetRoot, defs.IconPNG)
	for _, candidate := range []struct {
		src    string
		source IconSource
	}{
		{p.IconPath(), IconProject},
		{defs.IconPNG, IconWorkspace},
	} {
		if !fsutil.IsFile(s.fs, candidate.src) {
			continue
		}
		if err := fsutil.CopyFile(s.fs, candidate.src, dst); err != nil {
			return IconMissing, fsError("copy", candidate.src, err)
		}
		return candidate.source, nil
	}
	return IconMissing, nil
}

func fsError(op, p string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrFilesystem, op, p, err)
}
