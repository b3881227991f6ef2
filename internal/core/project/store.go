package project

import (
	"fmt"
	"io"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/sakiengine/saki/internal/defs"
	"github.com/sakiengine/saki/internal/fsutil"
)

// Store reads and writes content projects and the active project marker.
type Store struct {
	fs     billy.Filesystem
	layout Layout
	logger *slog.Logger
}

// NewStore creates a Store over the workspace filesystem.
func NewStore(fsys billy.Filesystem, layout Layout, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{fs: fsys, layout: layout, logger: logger}
}

// Layout returns the workspace layout the store was created with.
func (s *Store) Layout() Layout {
	return s.layout
}

// List returns the names of all content projects, sorted. A missing Game
// directory yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := s.fs.ReadDir(s.layout.GameDir)
	if err != nil {
		if fsutil.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list projects: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// Exists reports whether the named project directory exists. Names that
// are not a single directory under Game never exist.
func (s *Store) Exists(name string) bool {
	return checkDirName(name) == nil && fsutil.IsDir(s.fs, s.layout.ProjectRoot(name))
}

// Get returns the named project.
func (s *Store) Get(name string) (ContentProject, error) {
	if err := checkDirName(name); err != nil {
		return ContentProject{}, err
	}
	if !s.Exists(name) {
		return ContentProject{}, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return ContentProject{Name: name, Root: s.layout.ProjectRoot(name)}, nil
}

// Active returns the name stored in the active project marker.
func (s *Store) Active() (string, error) {
	data, err := util.ReadFile(s.fs, defs.ActiveMarkerTxt)
	if err != nil {
		if fsutil.IsNotExist(err) {
			return "", ErrNoActiveProject
		}
		return "", fmt.Errorf("read %s: %w", defs.ActiveMarkerTxt, err)
	}
	name := strings.TrimSpace(string(data))
	if first, _, ok := strings.Cut(name, "\n"); ok {
		name = strings.TrimSpace(first)
	}
	if name == "" {
		return "", ErrNoActiveProject
	}
	return name, nil
}

// ActiveProject resolves the active project marker to a project.
func (s *Store) ActiveProject() (ContentProject, error) {
	name, err := s.Active()
	if err != nil {
		return ContentProject{}, err
	}
	return s.Get(name)
}

// SetActive records name as the active project.
func (s *Store) SetActive(name string) error {
	if err := checkDirName(name); err != nil {
		return err
	}
	if !s.Exists(name) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	if err := util.WriteFile(s.fs, defs.ActiveMarkerTxt, []byte(name+"\n"), defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", defs.ActiveMarkerTxt, err)
	}
	s.logger.Info("active project set", "name", name)
	return nil
}

// ReadIdentity parses the project's identity descriptor: the first two
// non-blank lines, trimmed, are the application name and bundle id.
func (s *Store) ReadIdentity(p ContentProject) (Identity, error) {
	descriptor := p.DescriptorPath()
	data, err := util.ReadFile(s.fs, descriptor)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: read %s: %w", ErrInvalidDescriptor, descriptor, err)
	}

	var lines []string
	for line := range strings.Lines(string(data)) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 2 {
		return Identity{}, &ValidationError{
			Field:   path.Base(descriptor),
			Message: "needs an application name and a bundle id on separate lines",
			Value:   len(lines),
			Wrapped: ErrInvalidDescriptor,
		}
	}
	return Identity{AppName: lines[0], BundleID: lines[1]}, nil
}
