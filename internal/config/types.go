package config

import (
	"log/slog"
	"slices"
	"strings"
)

// Config is the root configuration aggregate read from saki.yaml.
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Fonts     FontsConfig     `yaml:"fonts"`
	Manifest  ManifestConfig  `yaml:"manifest"`
	Toolchain ToolchainConfig `yaml:"toolchain"`
	Log       LogConfig       `yaml:"log"`
}

// PathsConfig names the workspace directories, relative to the workspace root.
type PathsConfig struct {
	EngineDir string `yaml:"engine_dir"`
	GameDir   string `yaml:"game_dir"`
	AssetDir  string `yaml:"asset_dir"` // relative to engine_dir
	Manifest  string `yaml:"manifest"`  // relative to engine_dir
}

// FontsConfig controls the generated fonts section.
type FontsConfig struct {
	Bundled    BundledFontConfig `yaml:"bundled"`
	Extensions []string          `yaml:"extensions"`
}

// BundledFontConfig describes the font family shipped with the engine.
type BundledFontConfig struct {
	Family string `yaml:"family"`
	Asset  string `yaml:"asset"`
	Weight int    `yaml:"weight"` // 0 omits the weight line
}

// ManifestConfig controls manifest rewriting.
type ManifestConfig struct {
	Backup bool `yaml:"backup"`
}

// ToolchainConfig configures the external build tools.
type ToolchainConfig struct {
	Flutter         string   `yaml:"flutter"`
	Dart            string   `yaml:"dart"`
	LauncherIcons   bool     `yaml:"launcher_icons"`
	PubGetRetries   int      `yaml:"pub_get_retries"`
	AppNameTargets  []string `yaml:"app_name_targets"`
	BundleIDTargets []string `yaml:"bundle_id_targets"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// sectionNames lists the valid top-level keys of saki.yaml.
var sectionNames = []string{
	"paths",
	"fonts",
	"manifest",
	"toolchain",
	"log",
}

// IsValidSectionName reports whether name is a recognized section.
func IsValidSectionName(name string) bool {
	return slices.Contains(sectionNames, name)
}

// SectionNames returns a copy of the recognized section names.
func SectionNames() []string {
	return slices.Clone(sectionNames)
}

// SlogLevel maps the configured level name to a slog.Level. Unknown names
// map to slog.LevelWarn.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
