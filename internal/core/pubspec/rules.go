// Package pubspec knows the layout of the engine manifest: which lines make
// up the assets and fonts sections, and how to generate fresh bodies for them
// from the mirrored asset root and the active content project.
package pubspec

import "github.com/sakiengine/saki/internal/core/manifest"

// Section rules for the two generated manifest sections.
var (
	AssetsRule = manifest.NewPatternRule("assets", `^  assets:`,
		`^    - assets/`,
		`^    - assets\\`,
		`^\s*$`,
	)

	FontsRule = manifest.NewPatternRule("fonts", `^  fonts:`,
		`^    - family:`,
		`^      fonts:`,
		`^        - asset:`,
		`^          weight:`,
		`^          style:`,
		`^\s*$`,
	)
)

// Rules returns the section rules in the order they are applied.
func Rules() []manifest.SectionRule {
	return []manifest.SectionRule{AssetsRule, FontsRule}
}
