package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/sakiengine/saki/internal/core/project"
)

// FormAsker answers project prompts with huh forms. Each question runs as
// its own form.
type FormAsker struct {
	theme      *Theme
	huhTheme   *huh.Theme
	accessible bool
	out        io.Writer
}

var (
	_ project.Asker    = (*FormAsker)(nil)
	_ project.Chooser  = (*FormAsker)(nil)
	_ project.Notifier = (*FormAsker)(nil)
)

// NewFormAsker creates a FormAsker. Notices are written to out.
func NewFormAsker(theme *Theme, out io.Writer, accessible bool) *FormAsker {
	ht := huh.ThemeBase()
	if !theme.NoColor {
		ht.Focused.Title = ht.Focused.Title.Foreground(theme.Colors.Primary).Bold(true)
		ht.Focused.SelectSelector = ht.Focused.SelectSelector.Foreground(theme.Colors.Primary)
	}
	return &FormAsker{theme: theme, huhTheme: ht, accessible: accessible, out: out}
}

// Ask implements project.Asker.
func (a *FormAsker) Ask(question string) (string, error) {
	var value string
	field := huh.NewInput().
		Title(strings.TrimSpace(question)).
		Value(&value)
	if err := a.run(field); err != nil {
		return "", err
	}
	return value, nil
}

// Choose implements project.Chooser.
func (a *FormAsker) Choose(title string, options []string) (int, error) {
	opts := make([]huh.Option[int], len(options))
	for i, label := range options {
		opts[i] = huh.NewOption(label, i)
	}
	var picked int
	field := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&picked)
	if err := a.run(field); err != nil {
		return 0, err
	}
	return picked, nil
}

// Notify implements project.Notifier.
func (a *FormAsker) Notify(message string) {
	_, _ = fmt.Fprintf(a.out, "%s %s\n", a.theme.SymWarning(), a.theme.Warning.Render(message))
}

func (a *FormAsker) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(a.huhTheme).
		WithAccessible(a.accessible)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return project.ErrCancelled
		}
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

// LineAsker answers project prompts by reading lines, for piped input and
// terminals where forms cannot run. It returns io.EOF when input ends.
type LineAsker struct {
	in  *bufio.Reader
	out io.Writer
}

var (
	_ project.Asker    = (*LineAsker)(nil)
	_ project.Notifier = (*LineAsker)(nil)
)

// NewLineAsker creates a LineAsker reading from in and writing questions to out.
func NewLineAsker(in io.Reader, out io.Writer) *LineAsker {
	return &LineAsker{in: bufio.NewReader(in), out: out}
}

// Ask implements project.Asker. A final line without a newline is still an
// answer.
func (a *LineAsker) Ask(question string) (string, error) {
	if _, err := io.WriteString(a.out, question); err != nil {
		return "", err
	}
	line, err := a.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Notify implements project.Notifier.
func (a *LineAsker) Notify(message string) {
	_, _ = fmt.Fprintln(a.out, message)
}
