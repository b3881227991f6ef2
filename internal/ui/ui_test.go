package ui

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func headless(force bool) *HeadlessManager {
	hm := NewHeadlessManager()
	hm.ForceHeadless(force)
	return hm
}

func TestHeadlessManager_Force(t *testing.T) {
	t.Parallel()

	hm := NewHeadlessManager()
	hm.isTTY = func(uintptr) bool { return true }
	if hm.IsHeadless() {
		t.Error("terminal stdin and stdout should be interactive")
	}
	hm.ForceHeadless(true)
	if !hm.IsHeadless() {
		t.Error("ForceHeadless(true) should win over TTY detection")
	}
	hm.ClearForce()
	hm.isTTY = func(uintptr) bool { return false }
	if !hm.IsHeadless() {
		t.Error("non-terminal output should be headless")
	}
}

func TestHeadlessManager_NoColor(t *testing.T) {
	t.Parallel()

	env := map[string]string{}
	hm := NewHeadlessManager()
	hm.getenv = func(k string) string { return env[k] }
	hm.isTTY = func(uintptr) bool { return true }

	if hm.NoColor() {
		t.Error("colour should be on for a terminal")
	}
	env["NO_COLOR"] = "1"
	if !hm.NoColor() {
		t.Error("NO_COLOR should disable colour")
	}
	delete(env, "NO_COLOR")
	hm.DisableColor()
	if !hm.NoColor() {
		t.Error("DisableColor should disable colour")
	}
}

func TestConsoleReporter_Lines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewConsoleReporter(&buf, NewTheme(true))
	r.StepStart("sync", "Mirroring Demo")
	r.Warn("sync", errors.New("no icon found"))
	r.StepComplete("sync", "Mirrored Demo")
	r.StepError("manifest", errors.New("section not found"))

	want := "○ Mirroring Demo [sync]\n" +
		"! no icon found [sync]\n" +
		"✓ Mirrored Demo [sync]\n" +
		"✗ section not found [manifest]\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
	if r.Warnings() != 1 {
		t.Errorf("Warnings() = %d, want 1", r.Warnings())
	}
}

func TestConsoleReporter_HeadlessSpinner(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	theme := NewTheme(true)
	r := NewConsoleReporter(&buf, theme, WithSpinners(NewProgress(theme, headless(true), &buf)))
	r.StepStart("manifest", "Updating pubspec.yaml")
	r.StepComplete("manifest", "Updated pubspec.yaml")
	r.Close()

	want := "Updating pubspec.yaml...\n✓ Updated pubspec.yaml [manifest]\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestThemeNoColorIsPlain(t *testing.T) {
	t.Parallel()

	theme := NewTheme(true)
	for _, got := range []string{theme.SymSuccess(), theme.Warning.Render("careful"), theme.Title.Render("Saki")} {
		if strings.Contains(got, "\x1b[") {
			t.Errorf("%q contains escape sequences", got)
		}
	}
}

func TestSpinnerModel_Update(t *testing.T) {
	t.Parallel()

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	m := newSpinnerModel(NewTheme(true), "flutter pub get...", now)
	if m.Init() == nil {
		t.Fatal("Init should return the tick command")
	}
	if _, ok := m.spinner.Tick().(spinner.TickMsg); !ok {
		t.Fatal("Tick should produce a spinner.TickMsg")
	}

	clock = clock.Add(time.Second)
	updated, _ := m.Update(m.spinner.Tick())
	m = updated.(spinnerModel)
	if m.done {
		t.Error("a tick should not stop the spinner")
	}
	if view := m.View(); !strings.HasSuffix(view, " flutter pub get...\n") {
		t.Errorf("View() = %q, a fast step shows no running time", view)
	}

	clock = clock.Add(11500 * time.Millisecond)
	updated, _ = m.Update(m.spinner.Tick())
	m = updated.(spinnerModel)
	if view := m.View(); !strings.HasSuffix(view, " flutter pub get... 12s\n") {
		t.Errorf("View() = %q, want the running time", view)
	}

	updated, cmd := m.Update(spinnerStopMsg{})
	m = updated.(spinnerModel)
	if !m.done || cmd == nil {
		t.Error("stop should finish the model and quit")
	}
	if m.View() != "" {
		t.Errorf("finished View() = %q, want empty", m.View())
	}
}

func TestProgramSpinner_StopIdempotent(t *testing.T) {
	t.Parallel()

	p := tea.NewProgram(newSpinnerModel(NewTheme(true), "Loading", time.Now),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)
	s := startSpinner(p)

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("spinner did not stop within 2 seconds")
	}
}

func TestLineAsker(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	a := NewLineAsker(strings.NewReader("Demo\r\n2\nlast"), &out)

	for _, want := range []string{"Demo", "2", "last"} {
		got, err := a.Ask("? ")
		if err != nil {
			t.Fatalf("Ask() error: %v", err)
		}
		if got != want {
			t.Errorf("Ask() = %q, want %q", got, want)
		}
	}
	if _, err := a.Ask("? "); !errors.Is(err, io.EOF) {
		t.Errorf("Ask() after input ends = %v, want io.EOF", err)
	}

	a.Notify("Invalid choice.")
	if !strings.HasSuffix(out.String(), "? ? ? ? Invalid choice.\n") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	got, err := RenderMarkdown("# Demo\n\nA short *story*.\n", 60, true)
	if err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	if !strings.Contains(got, "Demo") || !strings.Contains(got, "story") {
		t.Errorf("rendered = %q", got)
	}
}
