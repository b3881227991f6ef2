package defs

// Common file names used across the workspace.
const (
	// ActiveMarkerTxt names the active content project. It lives at the
	// workspace root and is mirrored into the engine asset root.
	ActiveMarkerTxt = "default_game.txt"

	// DescriptorTxt is the per-project identity descriptor (name, bundle id).
	DescriptorTxt = "game_config.txt"

	// IconPNG is the launcher icon source, per project or workspace-wide.
	IconPNG = "icon.png"

	// PubspecYAML is the front-end manifest.
	PubspecYAML = "pubspec.yaml"

	// BackupSuffix is appended to the manifest name for the pre-write backup.
	BackupSuffix = ".backup"

	// ConfigYAML is the optional tool configuration at the workspace root.
	ConfigYAML = "saki.yaml"

	// DotEnv is the optional environment override file at the workspace root.
	DotEnv = ".env"

	// ReadmeMD is the per-project readme written by scaffolding.
	ReadmeMD = "README.md"
)

// Platform files patched during identity rename.
const (
	LinuxCMakeLists = "linux/CMakeLists.txt"
	WindowsRunnerRC = "windows/runner/Runner.rc"
)
