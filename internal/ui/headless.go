package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// HeadlessManager decides whether the UI may animate and prompt, and
// whether it may use colour.
type HeadlessManager struct {
	forced  *bool
	noColor bool
	getenv  func(string) string
	isTTY   func(fd uintptr) bool
}

// NewHeadlessManager creates a HeadlessManager that detects headless mode
// from the TTY state of os.Stdin and os.Stdout.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{
		getenv: os.Getenv,
		isTTY: func(fd uintptr) bool {
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
}

// IsHeadless returns true when the UI should not animate or prompt.
// ForceHeadless overrides TTY detection. Otherwise both stdin and stdout
// must be terminals for interactive mode.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	return !h.isTTY(os.Stdin.Fd()) || !h.isTTY(os.Stdout.Fd())
}

// ForceHeadless overrides TTY detection. Pass true to force headless mode,
// or false to force interactive mode regardless of TTY state.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

// ClearForce removes any forced override, reverting to automatic TTY detection.
func (h *HeadlessManager) ClearForce() {
	h.forced = nil
}

// DisableColor turns colour off regardless of the environment.
func (h *HeadlessManager) DisableColor() {
	h.noColor = true
}

// NoColor reports whether output should be plain: colour was disabled,
// NO_COLOR is set, or stdout is not a terminal.
func (h *HeadlessManager) NoColor() bool {
	if h.noColor || h.getenv("NO_COLOR") != "" {
		return true
	}
	return !h.isTTY(os.Stdout.Fd())
}
