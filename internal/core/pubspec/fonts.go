package pubspec

import (
	"fmt"
	"strconv"
)

// FontAsset is one font file inside a family declaration.
type FontAsset struct {
	Asset  string
	Weight int // zero omits the weight line
}

// FontFamily is a font family declaration.
type FontFamily struct {
	Family string
	Fonts  []FontAsset
}

// Lines renders the family with manifest indentation.
func (f FontFamily) Lines() []string {
	lines := []string{
		"    - family: " + f.Family,
		"      fonts:",
	}
	for _, font := range f.Fonts {
		lines = append(lines, "        - asset: "+font.Asset)
		if font.Weight != 0 {
			lines = append(lines, "          weight: "+strconv.Itoa(font.Weight))
		}
	}
	return lines
}

// String implements fmt.Stringer for logging.
func (f FontFamily) String() string {
	return fmt.Sprintf("%s (%d files)", f.Family, len(f.Fonts))
}

// BundledFont describes the family shipped with the engine itself.
type BundledFont struct {
	Family string
	Asset  string
	Weight int
}

// DefaultBundledFont is the engine's built-in family.
var DefaultBundledFont = BundledFont{
	Family: "SourceHanSansCN",
	Asset:  "assets/fonts/SourceHanSansCN-Bold.ttf",
	Weight: 700,
}

func (b BundledFont) family() FontFamily {
	return FontFamily{
		Family: b.Family,
		Fonts:  []FontAsset{{Asset: b.Asset, Weight: b.Weight}},
	}
}
