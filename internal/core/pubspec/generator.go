package pubspec

import (
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/text/unicode/norm"

	"github.com/sakiengine/saki/internal/defs"
	"github.com/sakiengine/saki/internal/fsutil"
)

// DefaultFontExtensions lists the font file extensions declared as families.
var DefaultFontExtensions = []string{".ttf", ".otf"}

// excludedAssetDirs are path fragments never declared as asset directories.
var excludedAssetDirs = []string{"/shaders", "/fonts"}

// Option configures a Generator.
type Option func(*Generator)

// WithBundledFont overrides the engine's built-in font family.
func WithBundledFont(font BundledFont) Option {
	return func(g *Generator) { g.bundled = font }
}

// WithFontExtensions overrides the accepted font file extensions.
func WithFontExtensions(exts ...string) Option {
	return func(g *Generator) {
		g.fontExts = make([]string, len(exts))
		for i, ext := range exts {
			g.fontExts[i] = strings.ToLower(ext)
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator builds replacement bodies for the manifest sections.
type Generator struct {
	fs       billy.Filesystem
	bundled  BundledFont
	fontExts []string
	logger   *slog.Logger
}

// NewGenerator creates a Generator reading from fsys.
func NewGenerator(fsys billy.Filesystem, opts ...Option) *Generator {
	g := &Generator{
		fs:       fsys,
		bundled:  DefaultBundledFont,
		fontExts: DefaultFontExtensions,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AssetSection returns the assets section body for the engine asset root: the
// anchor, the active-project marker, the bundled fonts directory when present,
// then every directory under the root in sorted order. Directories whose
// manifest path contains /shaders or /fonts are left out.
func (g *Generator) AssetSection(engineAssetRoot string) []string {
	lines := []string{
		"  assets:",
		"    - " + path.Join(defs.AssetDir, defs.ActiveMarkerTxt),
	}
	if fsutil.IsDir(g.fs, g.fs.Join(engineAssetRoot, defs.FontsSubdir)) {
		lines = append(lines, "    - "+path.Join(defs.AssetDir, defs.FontsSubdir)+"/")
	}

	for _, dir := range fsutil.Dirs(g.fs, engineAssetRoot) {
		entry := path.Join(defs.AssetDir, dir)
		if isExcludedAssetDir(entry) {
			continue
		}
		lines = append(lines, "    - "+entry+"/")
	}

	g.logger.Debug("asset section generated", "root", engineAssetRoot, "entries", len(lines)-1)
	return lines
}

// FontSection returns the fonts section body: the bundled family first, then
// one family per font file directly inside the project's Assets/fonts
// directory, in directory listing order. A missing directory yields only the
// bundled family.
func (g *Generator) FontSection(projectRoot string) []string {
	families := append([]FontFamily{g.bundled.family()}, g.ProjectFonts(projectRoot)...)

	lines := []string{"  fonts:"}
	for _, family := range families {
		lines = append(lines, family.Lines()...)
	}

	g.logger.Debug("font section generated", "project", projectRoot, "families", len(families))
	return lines
}

// ProjectFonts lists the font families declared by a content project.
func (g *Generator) ProjectFonts(projectRoot string) []FontFamily {
	fontsDir := g.fs.Join(projectRoot, defs.AssetsSubdir, defs.FontsSubdir)
	entries, err := g.fs.ReadDir(fontsDir)
	if err != nil {
		return nil
	}

	var families []FontFamily
	for _, entry := range entries {
		if entry.IsDir() || !g.isFontFile(entry.Name()) {
			continue
		}
		name := entry.Name()
		families = append(families, FontFamily{
			Family: familyName(name),
			Fonts: []FontAsset{{
				Asset: path.Join(defs.AssetDir, defs.AssetsSubdir, defs.FontsSubdir, name),
			}},
		})
	}
	return families
}

// familyName is the file name without its extension. A dotfile such as
// ".ttf" has no stem, so the whole name is used instead.
func familyName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = name
	}
	return norm.NFC.String(base)
}

func (g *Generator) isFontFile(name string) bool {
	return slices.Contains(g.fontExts, strings.ToLower(filepath.Ext(name)))
}

func isExcludedAssetDir(entry string) bool {
	for _, frag := range excludedAssetDirs {
		if strings.Contains(entry, frag) {
			return true
		}
	}
	return false
}
