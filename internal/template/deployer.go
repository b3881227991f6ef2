package template

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/sakiengine/saki/internal/defs"
	"github.com/sakiengine/saki/internal/fsutil"
)

// Deployer extracts templates from an embedded filesystem into a destination
// directory on a billy filesystem.
type Deployer interface {
	// Deploy writes every template under destRoot and returns the written
	// paths. Files ending in .tmpl are rendered with data and saved without
	// the suffix. Existing files are never overwritten.
	Deploy(ctx context.Context, dst billy.Filesystem, destRoot string, data any) ([]string, error)

	// ExtractTemplate returns the raw content of a single template by name.
	ExtractTemplate(name string) ([]byte, error)

	// ListTemplates returns the deployment target paths of all templates.
	ListTemplates() []string
}

type deployer struct {
	fsys     fs.FS
	renderer Renderer
}

// NewDeployer creates a Deployer backed by the given filesystem. In
// production fsys comes from go:embed; in tests use testing/fstest.MapFS.
func NewDeployer(fsys fs.FS) Deployer {
	return &deployer{fsys: fsys, renderer: NewRenderer(fsys)}
}

// NewDeployerWithRenderer creates a Deployer that renders .tmpl files with renderer.
func NewDeployerWithRenderer(fsys fs.FS, renderer Renderer) Deployer {
	return &deployer{fsys: fsys, renderer: renderer}
}

// Deploy walks the template filesystem and writes every file under destRoot.
func (d *deployer) Deploy(ctx context.Context, dst billy.Filesystem, destRoot string, data any) ([]string, error) {
	var written []string
	err := fs.WalkDir(d.fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == "." || entry.IsDir() {
			return nil
		}
		if err := validateDeployPath(p); err != nil {
			return err
		}

		var content []byte
		destRel := p
		if strings.HasSuffix(p, ".tmpl") {
			rendered, renderErr := d.renderer.Render(p, data)
			if renderErr != nil {
				return fmt.Errorf("template render %q: %w", p, renderErr)
			}
			content = rendered
			destRel = strings.TrimSuffix(p, ".tmpl")
		} else {
			raw, readErr := fs.ReadFile(d.fsys, p)
			if readErr != nil {
				return fmt.Errorf("template deploy read %q: %w", p, readErr)
			}
			content = raw
		}

		destPath := path.Join(destRoot, destRel)
		if fsutil.Exists(dst, destPath) {
			return nil
		}
		if err := dst.MkdirAll(path.Dir(destPath), defs.DirPerm); err != nil {
			return fmt.Errorf("template deploy mkdir %q: %w", path.Dir(destPath), err)
		}
		if err := util.WriteFile(dst, destPath, content, defs.FilePerm); err != nil {
			return fmt.Errorf("template deploy write %q: %w", destPath, err)
		}
		written = append(written, destPath)
		return nil
	})
	if err != nil {
		return written, err
	}
	return written, nil
}

// ExtractTemplate returns the content of a single named template.
func (d *deployer) ExtractTemplate(name string) ([]byte, error) {
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return data, nil
}

// ListTemplates returns sorted target paths of all files in the template FS.
func (d *deployer) ListTemplates() []string {
	var list []string
	_ = fs.WalkDir(d.fsys, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if p == "." || entry.IsDir() {
			return nil
		}
		list = append(list, strings.TrimSuffix(p, ".tmpl"))
		return nil
	})
	slices.Sort(list)
	return list
}

// validateDeployPath ensures a template path stays inside the destination.
func validateDeployPath(relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(relPath, "/") {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}
	return nil
}
