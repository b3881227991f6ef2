package config

import "github.com/sakiengine/saki/internal/defs"

// Default value constants.
const (
	DefaultBundledFamily = "SourceHanSansCN"
	DefaultBundledAsset  = "assets/fonts/SourceHanSansCN-Bold.ttf"
	DefaultBundledWeight = 700

	DefaultFlutter = "flutter"
	DefaultDart    = "dart"

	DefaultPubGetRetries = 2
	MaxPubGetRetries     = 10

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Paths:     NewDefaultPathsConfig(),
		Fonts:     NewDefaultFontsConfig(),
		Manifest:  ManifestConfig{Backup: true},
		Toolchain: NewDefaultToolchainConfig(),
		Log:       LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// NewDefaultPathsConfig returns the standard workspace layout.
func NewDefaultPathsConfig() PathsConfig {
	return PathsConfig{
		EngineDir: defs.EngineDir,
		GameDir:   defs.GameDir,
		AssetDir:  defs.AssetDir,
		Manifest:  defs.PubspecYAML,
	}
}

// NewDefaultFontsConfig returns the bundled font and recognized extensions.
func NewDefaultFontsConfig() FontsConfig {
	return FontsConfig{
		Bundled: BundledFontConfig{
			Family: DefaultBundledFamily,
			Asset:  DefaultBundledAsset,
			Weight: DefaultBundledWeight,
		},
		Extensions: []string{".ttf", ".otf"},
	}
}

// NewDefaultToolchainConfig returns the toolchain defaults.
func NewDefaultToolchainConfig() ToolchainConfig {
	return ToolchainConfig{
		Flutter:         DefaultFlutter,
		Dart:            DefaultDart,
		LauncherIcons:   true,
		PubGetRetries:   DefaultPubGetRetries,
		AppNameTargets:  []string{"android", "ios", "macos", "linux", "windows", "web"},
		BundleIDTargets: []string{"android", "ios", "macos"},
	}
}
