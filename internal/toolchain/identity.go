package toolchain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/sakiengine/saki/internal/core/pipeline"
	"github.com/sakiengine/saki/internal/core/project"
	"github.com/sakiengine/saki/internal/defs"
	"github.com/sakiengine/saki/internal/fsutil"
)

var (
	applicationIDPattern = regexp.MustCompile(`set\(APPLICATION_ID "[^"]*"\)`)
	companyNamePattern   = regexp.MustCompile(`VALUE "CompanyName", "[^"]*"`)
)

// Default rename targets.
var (
	DefaultAppNameTargets  = []string{"android", "ios", "macos", "linux", "windows", "web"}
	DefaultBundleIDTargets = []string{"android", "ios", "macos"}
)

// IdentitySetter renames the engine application with the rename package and
// patches the Linux and Windows build files it does not cover.
type IdentitySetter struct {
	fs            billy.Filesystem
	engineDir     string
	dart          string
	appTargets    []string
	bundleTargets []string
	run           RunFunc
	logger        *slog.Logger
}

var _ pipeline.IdentitySetter = (*IdentitySetter)(nil)

// IdentityOption configures an IdentitySetter.
type IdentityOption func(*IdentitySetter)

// WithIdentityRunFunc sets a custom command runner (used for testing).
func WithIdentityRunFunc(fn RunFunc) IdentityOption {
	return func(s *IdentitySetter) { s.run = fn }
}

// WithTargets overrides the rename targets. Empty lists keep the defaults.
func WithTargets(appName, bundleID []string) IdentityOption {
	return func(s *IdentitySetter) {
		if len(appName) > 0 {
			s.appTargets = appName
		}
		if len(bundleID) > 0 {
			s.bundleTargets = bundleID
		}
	}
}

// WithIdentityLogger sets the logger.
func WithIdentityLogger(l *slog.Logger) IdentityOption {
	return func(s *IdentitySetter) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewIdentitySetter creates an IdentitySetter. fsys is rooted at the
// workspace and engineDir is relative to it.
func NewIdentitySetter(fsys billy.Filesystem, engineDir, dart string, opts ...IdentityOption) *IdentitySetter {
	s := &IdentitySetter{
		fs:            fsys,
		engineDir:     engineDir,
		dart:          dart,
		appTargets:    DefaultAppNameTargets,
		bundleTargets: DefaultBundleIDTargets,
		run:           defaultRun,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ApplyIdentity sets the application name and bundle id on every target
// platform. Missing Linux or Windows build files are skipped. An invalid
// bundle id is rejected before any command runs or file is patched.
func (s *IdentitySetter) ApplyIdentity(ctx context.Context, id project.Identity) error {
	if err := project.ValidateBundleID(id.BundleID); err != nil {
		return err
	}
	id.BundleID = strings.TrimSpace(id.BundleID)

	dir := filepath.Join(s.fs.Root(), filepath.FromSlash(s.engineDir))

	for _, args := range [][]string{
		{"run", "rename", "setAppName", "--targets", strings.Join(s.appTargets, ","), "--value", id.AppName},
		{"run", "rename", "setBundleId", "--targets", strings.Join(s.bundleTargets, ","), "--value", id.BundleID},
	} {
		s.logger.Debug("running rename", "dir", dir, "args", args)
		if _, err := s.run(ctx, Command{Dir: dir, Name: s.dart, Args: args}); err != nil {
			return fmt.Errorf("rename %s: %w", args[2], err)
		}
	}

	patches := []struct {
		file    string
		pattern *regexp.Regexp
		repl    string
	}{
		{defs.LinuxCMakeLists, applicationIDPattern, fmt.Sprintf(`set(APPLICATION_ID "%s")`, id.BundleID)},
		{defs.WindowsRunnerRC, companyNamePattern, fmt.Sprintf(`VALUE "CompanyName", "%s"`, id.Organization())},
	}
	for _, p := range patches {
		name := path.Join(s.engineDir, p.file)
		changed, err := s.patch(name, p.pattern, p.repl)
		if err != nil {
			return fmt.Errorf("patch %s: %w", name, err)
		}
		s.logger.Debug("build file patched", "path", name, "changed", changed)
	}
	return nil
}

// patch replaces the first match of pattern in name. A missing file is not
// an error.
func (s *IdentitySetter) patch(name string, pattern *regexp.Regexp, repl string) (bool, error) {
	if !fsutil.IsFile(s.fs, name) {
		return false, nil
	}
	data, err := util.ReadFile(s.fs, name)
	if err != nil {
		return false, err
	}
	updated, ok := replaceFirst(string(data), pattern, repl)
	if !ok || updated == string(data) {
		return false, nil
	}
	perm := defs.FilePerm
	if info, statErr := s.fs.Stat(name); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := fsutil.WriteFileAtomic(s.fs, name, []byte(updated), perm); err != nil {
		return false, err
	}
	return true, nil
}

// replaceFirst substitutes repl, taken literally, for the first match.
func replaceFirst(s string, pattern *regexp.Regexp, repl string) (string, bool) {
	loc := pattern.FindStringIndex(s)
	if loc == nil {
		return s, false
	}
	return s[:loc[0]] + repl + s[loc[1]:], true
}
