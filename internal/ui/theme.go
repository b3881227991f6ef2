// Package ui renders console output for saki: step progress, prompts,
// spinners and markdown. Everything degrades to plain text when the
// terminal is not interactive or colour is disabled.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors is the adaptive palette used by every component.
type Colors struct {
	Primary lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
}

// DefaultColors is the saki palette.
var DefaultColors = Colors{
	Primary: lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"},
	Success: lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"},
	Warning: lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"},
	Error:   lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"},
	Muted:   lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
	Border:  lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"},
}

// Theme holds the styles derived from Colors.
type Theme struct {
	NoColor bool
	Colors  Colors

	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Title   lipgloss.Style
	Card    lipgloss.Style
}

// NewTheme builds a Theme. With noColor every style renders plain text.
func NewTheme(noColor bool) *Theme {
	t := &Theme{NoColor: noColor, Colors: DefaultColors}
	plain := lipgloss.NewStyle()
	if noColor {
		t.Primary, t.Success, t.Warning, t.Error, t.Muted = plain, plain, plain, plain, plain
		t.Title = plain
		t.Card = plain.Padding(0, 1)
		return t
	}
	t.Primary = plain.Foreground(t.Colors.Primary)
	t.Success = plain.Foreground(t.Colors.Success)
	t.Warning = plain.Foreground(t.Colors.Warning)
	t.Error = plain.Foreground(t.Colors.Error)
	t.Muted = plain.Foreground(t.Colors.Muted)
	t.Title = plain.Foreground(t.Colors.Primary).Bold(true)
	t.Card = plain.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Colors.Border).
		Padding(0, 1)
	return t
}

// Status symbols.
func (t *Theme) SymSuccess() string  { return t.Success.Render("✓") }
func (t *Theme) SymError() string    { return t.Error.Render("✗") }
func (t *Theme) SymWarning() string  { return t.Warning.Render("!") }
func (t *Theme) SymProgress() string { return t.Muted.Render("○") }
