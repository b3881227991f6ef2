package project

import (
	"path"
	"strings"

	"github.com/sakiengine/saki/internal/defs"
)

// ContentProject is a user-authored content directory under Game/. Root is
// relative to the workspace root.
type ContentProject struct {
	Name string
	Root string
}

// AssetsDir returns the project's asset tree.
func (p ContentProject) AssetsDir() string { return path.Join(p.Root, defs.AssetsSubdir) }

// ScriptDir returns the project's script tree.
func (p ContentProject) ScriptDir() string { return path.Join(p.Root, defs.ScriptSubdir) }

// FontsDir returns the project's font directory.
func (p ContentProject) FontsDir() string {
	return path.Join(p.Root, defs.AssetsSubdir, defs.FontsSubdir)
}

// IconPath returns the project's launcher icon.
func (p ContentProject) IconPath() string { return path.Join(p.Root, defs.IconPNG) }

// DescriptorPath returns the project's identity descriptor.
func (p ContentProject) DescriptorPath() string { return path.Join(p.Root, defs.DescriptorTxt) }

// ReadmePath returns the project's readme.
func (p ContentProject) ReadmePath() string { return path.Join(p.Root, defs.ReadmeMD) }

// Identity is the application identity read from a project descriptor.
type Identity struct {
	AppName  string
	BundleID string
}

// Organization returns the first segment of the bundle id, used as the
// company name on desktop platforms.
func (i Identity) Organization() string {
	org, _, _ := strings.Cut(i.BundleID, ".")
	return org
}
