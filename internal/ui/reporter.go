package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/sakiengine/saki/internal/core/pipeline"
)

// ConsoleReporter prints step progress as status lines. With a Progress
// attached, running steps show a spinner until they finish.
type ConsoleReporter struct {
	out      io.Writer
	theme    *Theme
	progress *Progress

	mu     sync.Mutex
	active Spinner
	warned int
}

var _ pipeline.Reporter = (*ConsoleReporter)(nil)

// ReporterOption configures a ConsoleReporter.
type ReporterOption func(*ConsoleReporter)

// WithSpinners shows a spinner while a step runs. Leave it off for steps
// that stream tool output to the same terminal.
func WithSpinners(p *Progress) ReporterOption {
	return func(r *ConsoleReporter) { r.progress = p }
}

// NewConsoleReporter creates a ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer, theme *Theme, opts ...ReporterOption) *ConsoleReporter {
	if theme == nil {
		theme = NewTheme(true)
	}
	r := &ConsoleReporter{out: out, theme: theme}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StepStart implements pipeline.Reporter.
func (r *ConsoleReporter) StepStart(step, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
	if r.progress != nil {
		r.active = r.progress.Spinner(message + "...")
		return
	}
	r.line(r.theme.SymProgress(), message, step)
}

// StepComplete implements pipeline.Reporter.
func (r *ConsoleReporter) StepComplete(step, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
	r.line(r.theme.SymSuccess(), message, step)
}

// Warn implements pipeline.Reporter.
func (r *ConsoleReporter) Warn(step string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
	r.warned++
	r.line(r.theme.SymWarning(), r.theme.Warning.Render(err.Error()), step)
}

// StepError implements pipeline.Reporter.
func (r *ConsoleReporter) StepError(step string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
	r.line(r.theme.SymError(), r.theme.Error.Render(err.Error()), step)
}

// Warnings returns how many warnings were reported.
func (r *ConsoleReporter) Warnings() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warned
}

// Close stops a spinner left running by an interrupted step.
func (r *ConsoleReporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *ConsoleReporter) stopLocked() {
	if r.active != nil {
		r.active.Stop()
		r.active = nil
	}
}

func (r *ConsoleReporter) line(symbol, message, step string) {
	_, _ = fmt.Fprintf(r.out, "%s %s %s\n", symbol, message, r.theme.Muted.Render("["+step+"]"))
}
