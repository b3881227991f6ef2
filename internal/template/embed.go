package template

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var embedded embed.FS

// Embedded template roots.
const (
	GameTemplates   = "game"
	EngineModuleTpl = "engine/module.dart.tmpl"
)

// EmbeddedTemplates returns the embedded template tree rooted at templates/.
func EmbeddedTemplates() (fs.FS, error) {
	return fs.Sub(embedded, "templates")
}
