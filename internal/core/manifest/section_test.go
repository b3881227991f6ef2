package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAssets = NewPatternRule("assets", `^  assets:`,
		`^    - assets/`, `^    - assets\\`, `^\s*$`)
	testFonts = NewPatternRule("fonts", `^  fonts:`,
		`^    - family:`, `^      fonts:`, `^        - asset:`,
		`^          weight:`, `^          style:`, `^\s*$`)
)

const sampleManifest = `name: demo
flutter:
  uses-material-design: true
  assets:
    - assets/old/
    - assets/stale/
  fonts:
    - family: Old
      fonts:
        - asset: assets/fonts/Old.ttf
          weight: 400
dev_dependencies:
  lints: any
`

func TestFindSection(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte(sampleManifest))

	span, err := FindSection(doc, testAssets)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 3, End: 6}, span)

	span, err = FindSection(doc, testFonts)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 6, End: 11}, span)
}

func TestFindSectionStopsAtSiblingKey(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("flutter:\n  assets:\n    - assets/a/\n  generate: true\n"))
	span, err := FindSection(doc, testAssets)
	require.NoError(t, err)
	assert.Equal(t, 3, span.End)
}

func TestFindSectionConsumesBlankLines(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("flutter:\n  assets:\n    - assets/a/\n\n   \n  fonts:\n"))
	span, err := FindSection(doc, testAssets)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 1, End: 5}, span)
}

func TestFindSectionStopsAtUnrecognizedLine(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("flutter:\n  assets:\n    - assets/a/\n    # comment\n    - assets/b/\n"))
	span, err := FindSection(doc, testAssets)
	require.NoError(t, err)
	assert.Equal(t, 3, span.End, "a comment line ends the section body")
}

func TestFindSectionBackslashEntries(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("  assets:\n    - assets\\win\\\n    - assets/ok/\n"))
	span, err := FindSection(doc, testAssets)
	require.NoError(t, err)
	assert.Equal(t, 3, span.End)
}

func TestFindSectionUsesFirstAnchor(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("  assets:\n    - assets/a/\nother:\n  assets:\n    - assets/b/\n"))
	span, err := FindSection(doc, testAssets)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 0, End: 2}, span)
}

func TestFindSectionEmptyBodyAtEOF(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("flutter:\n  assets:"))
	span, err := FindSection(doc, testAssets)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 1, End: 2}, span)
}

func TestFindSectionNotFound(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("flutter:\n  uses-material-design: true\n"))
	_, err := FindSection(doc, testFonts)
	require.ErrorIs(t, err, ErrSectionNotFound)
	assert.Contains(t, err.Error(), "fonts")
}

func TestReplaceSectionIsolation(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte(sampleManifest))
	body := []string{"  assets:", "    - assets/default_game.txt", "    - assets/new/"}

	out, err := ReplaceSection(doc, testAssets, body)
	require.NoError(t, err)

	before, after := doc.Lines(), out.Lines()
	assert.Equal(t, before[:3], after[:3], "lines before the anchor must be untouched")
	assert.Equal(t, body, after[3:6])
	assert.Equal(t, before[6:], after[6:], "lines after the section must be untouched")

	// Original document is not modified.
	assert.Equal(t, sampleManifest, string(doc.Bytes()))
}

func TestReplaceSectionPreservesCRLF(t *testing.T) {
	t.Parallel()

	input := strings.ReplaceAll(sampleManifest, "\n", "\r\n")
	doc := Parse([]byte(input))

	out, err := ReplaceSection(doc, testFonts, []string{"  fonts:"})
	require.NoError(t, err)
	got := string(out.Bytes())

	assert.True(t, strings.HasSuffix(got, "  lints: any\r\n"))
	assert.NotContains(t, strings.ReplaceAll(got, "\r\n", ""), "\n")
	assert.Contains(t, got, "    - assets/stale/\r\n  fonts:\r\ndev_dependencies:")
}

func TestReplaceSectionMixedLineEndings(t *testing.T) {
	t.Parallel()

	input := "name: x\r\n" +
		"flutter:\n" +
		"  assets:\n" +
		"    - assets/old/\n" +
		"  fonts:\r\n" +
		"    - family: Old\r\n" +
		"dev_dependencies:\n" +
		"  lints: any\r\n"
	doc := Parse([]byte(input))
	require.Equal(t, input, string(doc.Bytes()))

	out, err := ReplaceSection(doc, testAssets, []string{"  assets:", "    - assets/a/", "    - assets/b/"})
	require.NoError(t, err)
	out, err = ReplaceSection(out, testFonts, []string{"  fonts:", "    - family: New"})
	require.NoError(t, err)

	want := "name: x\r\n" +
		"flutter:\n" +
		"  assets:\n" +
		"    - assets/a/\n" +
		"    - assets/b/\n" +
		"  fonts:\r\n" +
		"    - family: New\r\n" +
		"dev_dependencies:\n" +
		"  lints: any\r\n"
	assert.Equal(t, want, string(out.Bytes()), "lines outside the sections keep their own endings")
}

func TestReplaceSectionAtUnterminatedEOF(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("flutter:\n  assets:"))
	out, err := ReplaceSection(doc, testAssets, []string{"  assets:", "    - assets/x/"})
	require.NoError(t, err)
	assert.Equal(t, "flutter:\n  assets:\n    - assets/x/", string(out.Bytes()))

	doc = Parse([]byte("flutter:\r\n  assets:\r\n    - assets/old/\r\n"))
	out, err = ReplaceSection(doc, testAssets, []string{"  assets:"})
	require.NoError(t, err)
	assert.Equal(t, "flutter:\r\n  assets:\r\n", string(out.Bytes()))
}

func TestReplaceSectionTwiceIsStable(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte(sampleManifest))
	body := []string{"  assets:", "    - assets/x/"}

	once, err := ReplaceSection(doc, testAssets, body)
	require.NoError(t, err)
	twice, err := ReplaceSection(once, testAssets, body)
	require.NoError(t, err)
	assert.Equal(t, string(once.Bytes()), string(twice.Bytes()))
}
