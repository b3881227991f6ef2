// Package pipeline orders the steps that prepare the engine for a content
// project: apply its identity, mirror its trees, and regenerate the manifest.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-git/go-billy/v5"

	"github.com/sakiengine/saki/internal/core/manifest"
	"github.com/sakiengine/saki/internal/core/mirror"
	"github.com/sakiengine/saki/internal/core/project"
	"github.com/sakiengine/saki/internal/core/pubspec"
)

// IdentitySetter applies an application identity to the engine project.
type IdentitySetter interface {
	ApplyIdentity(ctx context.Context, id project.Identity) error
}

// Result collects the outcome of each step that ran.
type Result struct {
	Project  project.ContentProject
	Identity *project.Identity
	Sync     *mirror.Result
	Change   *manifest.Change
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithIdentitySetter enables the identity step.
func WithIdentitySetter(s IdentitySetter) Option {
	return func(p *Pipeline) { p.identity = s }
}

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.reporter = r
		}
	}
}

// WithLogger sets the logger passed to every step.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithGeneratorOptions configures the manifest section generator.
func WithGeneratorOptions(opts ...pubspec.Option) Option {
	return func(p *Pipeline) { p.genOpts = append(p.genOpts, opts...) }
}

// WithEditorOptions configures the manifest editor.
func WithEditorOptions(opts ...manifest.Option) Option {
	return func(p *Pipeline) { p.editOpts = append(p.editOpts, opts...) }
}

// Pipeline prepares the engine for one content project at a time.
type Pipeline struct {
	fs       billy.Filesystem
	layout   project.Layout
	store    *project.Store
	identity IdentitySetter
	reporter Reporter
	logger   *slog.Logger
	genOpts  []pubspec.Option
	editOpts []manifest.Option
}

// New creates a Pipeline over the workspace filesystem.
func New(fsys billy.Filesystem, layout project.Layout, opts ...Option) *Pipeline {
	p := &Pipeline{
		fs:       fsys,
		layout:   layout,
		reporter: NoOpReporter{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.store = project.NewStore(fsys, layout, p.logger)
	return p
}

// Prepare runs identity, sync and manifest regeneration in that order and
// stops at the first failing step. The identity step is skipped when no
// IdentitySetter is configured.
func (p *Pipeline) Prepare(ctx context.Context, cp project.ContentProject) (*Result, error) {
	result := &Result{Project: cp}

	if p.identity != nil {
		id, err := p.applyIdentity(ctx, cp)
		if err != nil {
			return result, err
		}
		result.Identity = id
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	syncResult, err := p.Sync(cp)
	if err != nil {
		return result, err
	}
	result.Sync = syncResult

	if err := ctx.Err(); err != nil {
		return result, err
	}
	change, err := p.Regenerate(cp)
	if err != nil {
		return result, err
	}
	result.Change = change
	return result, nil
}

// Sync mirrors the project into the engine asset root.
func (p *Pipeline) Sync(cp project.ContentProject) (*mirror.Result, error) {
	p.reporter.StepStart(StepSync, fmt.Sprintf("Syncing %s into %s", cp.Name, p.layout.EngineAssetRoot()))
	res, err := mirror.NewSynchronizer(p.fs, p.logger).Sync(p.layout.EngineAssetRoot(), cp)
	if err != nil {
		p.reporter.StepError(StepSync, err)
		return nil, fmt.Errorf("sync %s: %w", cp.Name, err)
	}
	for _, w := range res.Warnings {
		p.reporter.Warn(StepSync, w)
	}
	p.reporter.StepComplete(StepSync, fmt.Sprintf("Copied %d files in %d directories (icon: %s)",
		res.CopiedFiles, res.CopiedDirs, res.Icon))
	return res, nil
}

// Regenerate rebuilds the assets and fonts sections of the manifest from the
// current engine asset root and the project's fonts.
func (p *Pipeline) Regenerate(cp project.ContentProject) (*manifest.Change, error) {
	path := p.layout.ManifestPath()
	p.reporter.StepStart(StepManifest, "Regenerating "+path)

	change, err := p.editor().Apply(path, p.Edits(cp)...)
	if err != nil {
		p.reporter.StepError(StepManifest, err)
		return nil, fmt.Errorf("regenerate manifest: %w", err)
	}

	switch {
	case change.Written:
		p.reporter.StepComplete(StepManifest, "Updated "+path)
	case change.Changed():
		p.reporter.StepComplete(StepManifest, "Computed changes for "+path)
	default:
		p.reporter.StepComplete(StepManifest, path+" already up to date")
	}
	return change, nil
}

// Edits returns the section edits for the project without applying them.
func (p *Pipeline) Edits(cp project.ContentProject) []manifest.Edit {
	gen := pubspec.NewGenerator(p.fs, append([]pubspec.Option{pubspec.WithLogger(p.logger)}, p.genOpts...)...)
	return []manifest.Edit{
		{Rule: pubspec.AssetsRule, Body: gen.AssetSection(p.layout.EngineAssetRoot())},
		{Rule: pubspec.FontsRule, Body: gen.FontSection(cp.Root)},
	}
}

// Restore puts the manifest backup back in place.
func (p *Pipeline) Restore() error {
	return p.editor().Restore(p.layout.ManifestPath())
}

func (p *Pipeline) editor() *manifest.Editor {
	return manifest.NewEditor(p.fs, append([]manifest.Option{manifest.WithLogger(p.logger)}, p.editOpts...)...)
}

func (p *Pipeline) applyIdentity(ctx context.Context, cp project.ContentProject) (*project.Identity, error) {
	p.reporter.StepStart(StepIdentity, "Applying identity of "+cp.Name)
	id, err := p.store.ReadIdentity(cp)
	if err != nil {
		p.reporter.StepError(StepIdentity, err)
		return nil, fmt.Errorf("read identity: %w", err)
	}
	if err := p.identity.ApplyIdentity(ctx, id); err != nil {
		p.reporter.StepError(StepIdentity, err)
		return nil, fmt.Errorf("apply identity: %w", err)
	}
	p.reporter.StepComplete(StepIdentity, fmt.Sprintf("%s (%s)", id.AppName, id.BundleID))
	return &id, nil
}
