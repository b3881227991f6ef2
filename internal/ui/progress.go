package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// elapsedAfter is how long a step runs before the spinner shows its age.
const elapsedAfter = 2 * time.Second

// Spinner marks a running step until Stop is called.
type Spinner interface {
	Stop()
}

// Progress creates spinners suited to the terminal.
type Progress struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
}

// NewProgress returns a Progress writing to w (os.Stdout when nil).
func NewProgress(theme *Theme, hm *HeadlessManager, w io.Writer) *Progress {
	if w == nil {
		w = os.Stdout
	}
	return &Progress{theme: theme, headless: hm, writer: w}
}

// Spinner starts a spinner labelled title. Without a colour terminal the
// title is printed once instead.
func (p *Progress) Spinner(title string) Spinner {
	if p.headless.IsHeadless() || p.theme.NoColor {
		_, _ = fmt.Fprintln(p.writer, title)
		return stoppedSpinner{}
	}
	model := newSpinnerModel(p.theme, title, time.Now)
	return startSpinner(tea.NewProgram(model, tea.WithInput(nil), tea.WithOutput(p.writer)))
}

type spinnerStopMsg struct{}

// spinnerModel animates a dot spinner followed by the step title and,
// for slow steps such as flutter pub get, the running time.
type spinnerModel struct {
	spinner spinner.Model
	title   string
	muted   lipgloss.Style
	now     func() time.Time
	started time.Time
	elapsed time.Duration
	done    bool
}

func newSpinnerModel(theme *Theme, title string, now func() time.Time) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !theme.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(theme.Colors.Primary)
	}
	return spinnerModel{spinner: s, title: title, muted: theme.Muted, now: now, started: now()}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		m.elapsed = m.now().Sub(m.started)
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	view := m.spinner.View() + " " + m.title
	if m.elapsed >= elapsedAfter {
		view += " " + m.muted.Render(m.elapsed.Truncate(time.Second).String())
	}
	return view + "\n"
}

// programSpinner runs a spinnerModel in its own tea.Program. The program
// reads no input, so Ctrl+C still reaches the command.
type programSpinner struct {
	program *tea.Program
	done    chan struct{}
	once    sync.Once
}

func startSpinner(p *tea.Program) *programSpinner {
	s := &programSpinner{program: p, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		_, _ = p.Run()
	}()
	return s
}

// Stop clears the spinner line and waits for the program to exit. It is
// safe to call more than once.
func (s *programSpinner) Stop() {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{})
		<-s.done
	})
}

type stoppedSpinner struct{}

func (stoppedSpinner) Stop() {}
