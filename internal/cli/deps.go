// Package cli provides the Cobra command tree for saki. This file holds the
// composition root that wires configuration, the workspace filesystem, the
// core pipeline, the toolchain adapters and the console UI together.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/sakiengine/saki/internal/config"
	"github.com/sakiengine/saki/internal/core/manifest"
	"github.com/sakiengine/saki/internal/core/pipeline"
	"github.com/sakiengine/saki/internal/core/project"
	"github.com/sakiengine/saki/internal/core/pubspec"
	"github.com/sakiengine/saki/internal/toolchain"
	"github.com/sakiengine/saki/internal/ui"
)

// newHeadlessManager builds the TTY detector (replaced in tests).
var newHeadlessManager = ui.NewHeadlessManager

// commandRunner replaces the flutter and dart runner when set (used for testing).
var commandRunner toolchain.RunFunc

// Dependencies holds everything a command needs for one invocation.
type Dependencies struct {
	Root     string // absolute workspace root
	Config   *config.Config
	Manager  *config.Manager
	Layout   project.Layout
	FS       billy.Filesystem
	Store    *project.Store
	Logger   *slog.Logger
	Headless *ui.HeadlessManager
	Theme    *ui.Theme
	Asker    project.Asker // nil when prompting is disabled

	out    io.Writer
	errOut io.Writer
}

// loadDependencies resolves the workspace for cmd and wires the services.
func loadDependencies(cmd *cobra.Command) (*Dependencies, error) {
	root, err := workspaceRoot(cmd, false)
	if err != nil {
		return nil, err
	}

	mgr := config.NewManager()
	cfg, err := mgr.Load(root)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	hm := newHeadlessManager()
	if getBoolFlag(cmd, "no-color") {
		hm.DisableColor()
	}
	theme := ui.NewTheme(hm.NoColor())

	d := &Dependencies{
		Root:     root,
		Config:   cfg,
		Manager:  mgr,
		Layout:   layoutFromConfig(cfg),
		FS:       osfs.New(root),
		Headless: hm,
		Theme:    theme,
		Logger:   newLogger(cmd.ErrOrStderr(), cfg.Log, getBoolFlag(cmd, "verbose")),
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
	}
	d.Store = project.NewStore(d.FS, d.Layout, d.Logger)

	switch {
	case getBoolFlag(cmd, "non-interactive"):
	case hm.IsHeadless():
		d.Asker = ui.NewLineAsker(cmd.InOrStdin(), d.out)
	default:
		d.Asker = ui.NewFormAsker(theme, d.out, false)
	}

	d.Logger.Debug("dependencies loaded", "root", root, "config", mgr.Path(), "interactive", d.Asker != nil)
	return d, nil
}

// workspaceRoot returns the --root flag or the discovered workspace. With
// allowCurrent a missing workspace falls back to the current directory.
func workspaceRoot(cmd *cobra.Command, allowCurrent bool) (string, error) {
	if root := getStringFlag(cmd, "root"); root != "" {
		return filepath.Abs(root)
	}
	if allowCurrent {
		return project.FindWorkspaceRootOrCurrent("", project.DefaultLayout())
	}
	return project.FindWorkspaceRoot("", project.DefaultLayout())
}

func layoutFromConfig(cfg *config.Config) project.Layout {
	return project.Layout{
		EngineDir: cfg.Paths.EngineDir,
		GameDir:   cfg.Paths.GameDir,
		AssetDir:  cfg.Paths.AssetDir,
		Manifest:  cfg.Paths.Manifest,
	}
}

// newLogger builds the structured logger. Output goes to w so normal
// console lines on stdout stay clean.
func newLogger(w io.Writer, lc config.LogConfig, verbose bool) *slog.Logger {
	level := lc.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(lc.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Resolver returns a project resolver that may scaffold new projects.
func (d *Dependencies) Resolver() (*project.Resolver, error) {
	scaffold, err := d.Scaffolder()
	if err != nil {
		return nil, err
	}
	return project.NewResolver(d.Store, d.Asker, scaffold, d.Logger), nil
}

// Scaffolder returns a scaffolder using the embedded templates.
func (d *Dependencies) Scaffolder() (*project.Scaffolder, error) {
	return project.NewScaffolder(d.FS, d.Layout, nil, d.Logger)
}

// Reporter returns a console reporter. Spinners are used only when the
// terminal is interactive and stream is false.
func (d *Dependencies) Reporter(stream bool) *ui.ConsoleReporter {
	var opts []ui.ReporterOption
	if !stream && !d.Headless.IsHeadless() && !d.Theme.NoColor {
		opts = append(opts, ui.WithSpinners(ui.NewProgress(d.Theme, d.Headless, d.out)))
	}
	return ui.NewConsoleReporter(d.out, d.Theme, opts...)
}

// Pipeline returns the core pipeline configured from saki.yaml.
func (d *Dependencies) Pipeline(extra ...pipeline.Option) *pipeline.Pipeline {
	bundled := d.Config.Fonts.Bundled
	opts := []pipeline.Option{
		pipeline.WithLogger(d.Logger),
		pipeline.WithGeneratorOptions(
			pubspec.WithBundledFont(pubspec.BundledFont{
				Family: bundled.Family,
				Asset:  bundled.Asset,
				Weight: bundled.Weight,
			}),
			pubspec.WithFontExtensions(d.Config.Fonts.Extensions...),
		),
		pipeline.WithEditorOptions(manifest.WithBackup(d.Config.Manifest.Backup)),
	}
	return pipeline.New(d.FS, d.Layout, append(opts, extra...)...)
}

// IdentitySetter returns the rename adapter for the engine project.
func (d *Dependencies) IdentitySetter() *toolchain.IdentitySetter {
	tc := d.Config.Toolchain
	opts := []toolchain.IdentityOption{
		toolchain.WithTargets(tc.AppNameTargets, tc.BundleIDTargets),
		toolchain.WithIdentityLogger(d.Logger),
	}
	if commandRunner != nil {
		opts = append(opts, toolchain.WithIdentityRunFunc(commandRunner))
	}
	return toolchain.NewIdentitySetter(d.FS, d.Layout.EngineDir, tc.Dart, opts...)
}

// Checker returns the flutter SDK checker.
func (d *Dependencies) Checker() *toolchain.Checker {
	var opts []toolchain.CheckerOption
	if commandRunner != nil {
		opts = append(opts, toolchain.WithCheckerRunFunc(commandRunner))
	}
	return toolchain.NewChecker(d.Config.Toolchain.Flutter, opts...)
}

// Builder returns the flutter build runner streaming to the command output.
func (d *Dependencies) Builder(reporter pipeline.Reporter) *toolchain.Builder {
	opts := []toolchain.BuilderOption{
		toolchain.WithOutput(d.out, d.errOut),
		toolchain.WithLauncherIcons(d.Config.Toolchain.LauncherIcons),
		toolchain.WithRetries(d.Config.Toolchain.PubGetRetries, time.Second),
		toolchain.WithBuilderReporter(reporter),
		toolchain.WithBuilderLogger(d.Logger),
	}
	if commandRunner != nil {
		opts = append(opts, toolchain.WithBuilderRunFunc(commandRunner))
	}
	return toolchain.NewBuilder(d.abs(d.Layout.EngineDir), d.Config.Toolchain.Flutter, opts...)
}

// abs converts a workspace-relative path to an OS path.
func (d *Dependencies) abs(rel string) string {
	return filepath.Join(d.Root, filepath.FromSlash(rel))
}

// projectName returns the --project flag, or the first argument.
func projectName(cmd *cobra.Command, args []string) string {
	if name := getStringFlag(cmd, "project"); name != "" {
		return name
	}
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
