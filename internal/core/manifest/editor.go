package manifest

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/sakiengine/saki/internal/defs"
	"github.com/sakiengine/saki/internal/fsutil"
)

// Edit pairs a section rule with the replacement body for that section.
type Edit struct {
	Rule SectionRule
	Body []string
}

// Change describes the outcome of Editor.Apply.
type Change struct {
	Path       string
	Before     *Document
	After      *Document
	Written    bool   // false for dry runs and for no-op edits
	BackupPath string // non-empty when a backup was written
}

// Changed reports whether the edits altered the manifest bytes.
func (c *Change) Changed() bool {
	return !bytes.Equal(c.Before.Bytes(), c.After.Bytes())
}

// Option configures an Editor.
type Option func(*Editor)

// WithBackup enables copying the manifest to BackupPath before each write.
func WithBackup(enabled bool) Option {
	return func(e *Editor) { e.backup = enabled }
}

// WithDryRun makes Apply compute the change without touching the filesystem.
func WithDryRun(enabled bool) Option {
	return func(e *Editor) { e.dryRun = enabled }
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor reads, edits and writes a manifest file on a billy filesystem.
type Editor struct {
	fs     billy.Filesystem
	backup bool
	dryRun bool
	logger *slog.Logger
}

// NewEditor creates an Editor over fsys.
func NewEditor(fsys billy.Filesystem, opts ...Option) *Editor {
	e := &Editor{
		fs:     fsys,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BackupPath returns the backup location for the manifest at path.
func BackupPath(path string) string {
	return path + defs.BackupSuffix
}

// Load reads and parses the manifest at path.
func (e *Editor) Load(path string) (*Document, error) {
	data, err := util.ReadFile(e.fs, path)
	if err != nil {
		if fsutil.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrFilesystem, path, err)
	}
	return Parse(data), nil
}

// Apply loads the manifest, applies every edit in memory and writes the
// result once. If any section is missing the file is left untouched, even
// when earlier edits succeeded.
func (e *Editor) Apply(path string, edits ...Edit) (*Change, error) {
	before, err := e.Load(path)
	if err != nil {
		return nil, err
	}

	after := before
	for _, edit := range edits {
		after, err = ReplaceSection(after, edit.Rule, edit.Body)
		if err != nil {
			return nil, fmt.Errorf("edit %s: %w", path, err)
		}
		e.logger.Debug("section replaced", "section", edit.Rule.Name(), "lines", len(edit.Body))
	}

	change := &Change{Path: path, Before: before, After: after}
	if e.dryRun {
		return change, nil
	}
	if !change.Changed() {
		e.logger.Debug("manifest unchanged", "path", path)
		return change, nil
	}

	perm := defs.FilePerm
	if info, statErr := e.fs.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	if e.backup {
		backup := BackupPath(path)
		if err := fsutil.CopyFile(e.fs, path, backup); err != nil {
			return nil, fmt.Errorf("%w: backup %s: %w", ErrFilesystem, path, err)
		}
		change.BackupPath = backup
	}

	if err := fsutil.WriteFileAtomic(e.fs, path, after.Bytes(), perm); err != nil {
		return nil, fmt.Errorf("%w: write %s: %w", ErrFilesystem, path, err)
	}
	change.Written = true
	e.logger.Info("manifest written", "path", path, "backup", change.BackupPath)
	return change, nil
}

// Restore copies the backup over the manifest at path.
func (e *Editor) Restore(path string) error {
	backup := BackupPath(path)
	if !fsutil.IsFile(e.fs, backup) {
		return fmt.Errorf("%w: %s", ErrBackupNotFound, backup)
	}
	if err := fsutil.CopyFile(e.fs, backup, path); err != nil {
		return fmt.Errorf("%w: restore %s: %w", ErrFilesystem, path, err)
	}
	e.logger.Info("manifest restored", "path", path, "backup", backup)
	return nil
}
