package project

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/sakiengine/saki/internal/defs"
	"github.com/sakiengine/saki/internal/fsutil"
	"github.com/sakiengine/saki/internal/template"
	"github.com/sakiengine/saki/pkg/version"
)

// ScaffoldOptions configures a new content project.
type ScaffoldOptions struct {
	Name     string
	BundleID string
	Color    string // hex with or without #, empty for DefaultColor
}

// ScaffoldResult summarizes what Create produced. Paths are relative to the
// workspace root.
type ScaffoldResult struct {
	Project      ContentProject
	ModulePath   string
	CreatedDirs  []string
	CreatedFiles []string
}

// projectDirs lists the directories created under a new project root.
// Empty directories cannot live in an embedded template tree.
var projectDirs = []string{
	"Assets/fonts",
	"Assets/images/backgrounds",
	"Assets/images/characters",
	"Assets/images/items",
	"Assets/gui",
	"Assets/music",
	"Assets/sound",
	"Assets/voice",
	"GameScript/configs",
	"GameScript/labels",
}

// Scaffolder creates new content projects and their engine modules.
type Scaffolder struct {
	fs     billy.Filesystem
	layout Layout
	tmpl   fs.FS
	logger *slog.Logger
}

// NewScaffolder creates a Scaffolder that renders templates from tmpl, a tree
// holding game/ and engine/ roots. A nil tmpl uses the embedded templates.
func NewScaffolder(fsys billy.Filesystem, layout Layout, tmpl fs.FS, logger *slog.Logger) (*Scaffolder, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if tmpl == nil {
		embedded, err := template.EmbeddedTemplates()
		if err != nil {
			return nil, fmt.Errorf("load embedded templates: %w", err)
		}
		tmpl = embedded
	}
	return &Scaffolder{fs: fsys, layout: layout, tmpl: tmpl, logger: logger}, nil
}

// Create validates opts and writes the project tree and the engine module.
func (s *Scaffolder) Create(ctx context.Context, opts ScaffoldOptions) (*ScaffoldResult, error) {
	name := strings.TrimSpace(opts.Name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateBundleID(opts.BundleID); err != nil {
		return nil, err
	}
	color, err := NormalizeColor(opts.Color)
	if err != nil {
		return nil, err
	}
	rgb, err := HexToRGB(color)
	if err != nil {
		return nil, err
	}

	root := s.layout.ProjectRoot(name)
	if fsutil.Exists(s.fs, root) {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, name)
	}

	s.logger.Info("creating content project", "name", name, "bundle_id", opts.BundleID, "color", color)

	data := template.NewProjectContext(
		template.WithProject(name),
		template.WithBundleID(strings.TrimSpace(opts.BundleID)),
		template.WithColor(color, rgb),
		template.WithVersion(version.Get().Version),
	)
	result := &ScaffoldResult{Project: ContentProject{Name: name, Root: root}}

	for _, dir := range projectDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := path.Join(root, dir)
		if err := s.fs.MkdirAll(p, defs.DirPerm); err != nil {
			return nil, fmt.Errorf("create %s: %w", p, err)
		}
		result.CreatedDirs = append(result.CreatedDirs, p)
	}

	game, err := fs.Sub(s.tmpl, template.GameTemplates)
	if err != nil {
		return nil, fmt.Errorf("open game templates: %w", err)
	}
	written, err := template.NewDeployer(game).Deploy(ctx, s.fs, root, data)
	result.CreatedFiles = append(result.CreatedFiles, written...)
	if err != nil {
		return nil, fmt.Errorf("deploy game templates: %w", err)
	}

	if err := s.createModule(data, result); err != nil {
		return nil, err
	}

	s.logger.Info("content project created", "name", name, "files", len(result.CreatedFiles))
	return result, nil
}

// createModule renders Engine/lib/<lower>/<lower>_module.dart and an empty
// screens/ directory beside it.
func (s *Scaffolder) createModule(data *template.ProjectContext, result *ScaffoldResult) error {
	dir := s.layout.ModuleDir(data.ProjectLower)
	screens := path.Join(dir, "screens")
	if err := s.fs.MkdirAll(screens, defs.DirPerm); err != nil {
		return fmt.Errorf("create %s: %w", screens, err)
	}
	result.CreatedDirs = append(result.CreatedDirs, dir, screens)

	content, err := template.NewRenderer(s.tmpl).Render(template.EngineModuleTpl, data)
	if err != nil {
		return fmt.Errorf("render engine module: %w", err)
	}
	modulePath := path.Join(dir, data.ProjectLower+"_module.dart")
	if fsutil.Exists(s.fs, modulePath) {
		s.logger.Warn("engine module exists, leaving it untouched", "path", modulePath)
		result.ModulePath = modulePath
		return nil
	}
	if err := fsutil.WriteFileAtomic(s.fs, modulePath, content, defs.FilePerm); err != nil {
		return fmt.Errorf("write %s: %w", modulePath, err)
	}
	result.ModulePath = modulePath
	result.CreatedFiles = append(result.CreatedFiles, modulePath)
	return nil
}
