package defs

// Workspace directory layout.
const (
	// EngineDir holds the generated front-end project.
	EngineDir = "Engine"

	// GameDir holds one subdirectory per content project.
	GameDir = "Game"

	// AssetDir is the engine asset root under EngineDir.
	AssetDir = "assets"

	// AssetsSubdir is the content asset tree, both in a project and mirrored.
	AssetsSubdir = "Assets"

	// ScriptSubdir is the content script tree, both in a project and mirrored.
	ScriptSubdir = "GameScript"

	// FontsSubdir is the font directory inside an asset tree.
	FontsSubdir = "fonts"

	// EngineLibDir holds per-project engine modules.
	EngineLibDir = "lib"
)
