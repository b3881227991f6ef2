package project

import (
	"path"

	"github.com/sakiengine/saki/internal/defs"
)

// Layout names the workspace directories. All paths are relative to the
// workspace root and use forward slashes.
type Layout struct {
	EngineDir string
	GameDir   string
	AssetDir  string // relative to EngineDir
	Manifest  string // relative to EngineDir
}

// DefaultLayout returns the standard workspace layout.
func DefaultLayout() Layout {
	return Layout{
		EngineDir: defs.EngineDir,
		GameDir:   defs.GameDir,
		AssetDir:  defs.AssetDir,
		Manifest:  defs.PubspecYAML,
	}
}

// EngineAssetRoot returns the engine asset root, e.g. Engine/assets.
func (l Layout) EngineAssetRoot() string {
	return path.Join(l.EngineDir, l.AssetDir)
}

// ManifestPath returns the manifest path, e.g. Engine/pubspec.yaml.
func (l Layout) ManifestPath() string {
	return path.Join(l.EngineDir, l.Manifest)
}

// ProjectRoot returns the directory of the named content project.
func (l Layout) ProjectRoot(name string) string {
	return path.Join(l.GameDir, name)
}

// ModuleDir returns the engine module directory for a project name.
func (l Layout) ModuleDir(lowerName string) string {
	return path.Join(l.EngineDir, defs.EngineLibDir, lowerName)
}
