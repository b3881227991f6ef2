package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// RenderMarkdown renders src for the terminal, wrapped at width columns.
// With noColor it uses the plain notty style.
func RenderMarkdown(src string, width int, noColor bool) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if noColor {
		opts = append(opts, glamour.WithStandardStyle(styles.NoTTYStyle))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(src)
}
