package toolchain

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) StepStart(step, _ string)    { r.events = append(r.events, "start:"+step) }
func (r *recordingReporter) StepComplete(step, _ string) { r.events = append(r.events, "done:"+step) }
func (r *recordingReporter) Warn(step string, _ error)   { r.events = append(r.events, "warn:"+step) }
func (r *recordingReporter) StepError(step string, _ error) {
	r.events = append(r.events, "error:"+step)
}

func recordCalls(fail map[string]error) (RunFunc, *[]Command) {
	var calls []Command
	return func(_ context.Context, cmd Command) (string, error) {
		calls = append(calls, cmd)
		return "", fail[strings.Join(cmd.Args, " ")]
	}, &calls
}

func argLines(calls []Command) []string {
	lines := make([]string, 0, len(calls))
	for _, c := range calls {
		lines = append(lines, c.Name+" "+strings.Join(c.Args, " "))
	}
	return lines
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	runner, calls := recordCalls(nil)
	var out bytes.Buffer
	rep := &recordingReporter{}
	b := NewBuilder("/work/Engine", "flutter",
		WithBuilderRunFunc(runner),
		WithOutput(&out, &out),
		WithBuilderReporter(rep),
	)

	result, err := b.Build(context.Background(), BuildOptions{
		Platform: Detect("linux"),
		GamePath: "/work/Game/Demo",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Device != "linux" {
		t.Errorf("Device = %q, want linux", result.Device)
	}

	want := []string{
		"flutter clean",
		"flutter pub get",
		"flutter pub run flutter_launcher_icons:main",
		"flutter run -d linux --dart-define=SAKI_GAME_PATH=/work/Game/Demo",
	}
	if got := argLines(*calls); !slices.Equal(got, want) {
		t.Errorf("commands = %q\nwant %q", got, want)
	}
	for _, c := range *calls {
		if c.Dir != "/work/Engine" {
			t.Errorf("%v ran in %q, want the engine directory", c.Args, c.Dir)
		}
		if c.Stdout != &out {
			t.Errorf("%v output should stream", c.Args)
		}
	}
	if len(rep.events) != 8 || rep.events[0] != "start:clean" || rep.events[7] != "done:run" {
		t.Errorf("events = %v", rep.events)
	}
}

func TestBuilder_BuildWeb(t *testing.T) {
	t.Parallel()

	runner, calls := recordCalls(nil)
	b := NewBuilder("/e", "flutter", WithBuilderRunFunc(runner), WithLauncherIcons(false))

	result, err := b.Build(context.Background(), BuildOptions{
		Platform: Detect("plan9"),
		Web:      true,
		GamePath: "/g",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Device != DeviceWeb {
		t.Errorf("Device = %q, want %q", result.Device, DeviceWeb)
	}
	got := argLines(*calls)
	if len(got) != 3 {
		t.Fatalf("commands = %q, icons step should be skipped", got)
	}
	if got[2] != "flutter run -d chrome --dart-define=SAKI_GAME_PATH=/g" {
		t.Errorf("run command = %q", got[2])
	}
}

func TestBuilder_IconFailureIsWarning(t *testing.T) {
	t.Parallel()

	iconErr := errors.New("exit status 1")
	runner, calls := recordCalls(map[string]error{"pub run flutter_launcher_icons:main": iconErr})
	rep := &recordingReporter{}
	b := NewBuilder("/e", "flutter", WithBuilderRunFunc(runner), WithBuilderReporter(rep))

	result, err := b.Build(context.Background(), BuildOptions{Platform: Detect("darwin"), GamePath: "/g"})
	if err != nil {
		t.Fatalf("icon failure should not stop the build: %v", err)
	}
	if len(*calls) != 4 {
		t.Errorf("ran %d commands, want 4", len(*calls))
	}
	if len(result.Warnings) != 1 || !errors.Is(result.Warnings[0], iconErr) {
		t.Errorf("Warnings = %v", result.Warnings)
	}
	if !slices.Contains(rep.events, "warn:"+StepIcons) {
		t.Errorf("events = %v, want an icons warning", rep.events)
	}
}

func TestBuilder_StepFailureStops(t *testing.T) {
	t.Parallel()

	getErr := &CommandError{Command: "flutter", Args: []string{"pub", "get"}, Err: errors.New("exit status 69")}
	runner, calls := recordCalls(map[string]error{"pub get": getErr})
	rep := &recordingReporter{}
	b := NewBuilder("/e", "flutter", WithBuilderRunFunc(runner), WithBuilderReporter(rep))

	_, err := b.Build(context.Background(), BuildOptions{Platform: Detect("windows"), GamePath: "/g"})
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("Build() error = %v, want ErrCommandFailed", err)
	}
	if len(*calls) != 2 {
		t.Errorf("ran %d commands, want the build to stop after pub get", len(*calls))
	}
	if rep.events[len(rep.events)-1] != "error:"+StepDependencies {
		t.Errorf("events = %v", rep.events)
	}
}

func TestBuilder_UnsupportedPlatform(t *testing.T) {
	t.Parallel()

	runner, calls := recordCalls(nil)
	b := NewBuilder("/e", "flutter", WithBuilderRunFunc(runner))

	_, err := b.Build(context.Background(), BuildOptions{Platform: Detect("plan9")})
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("Build() error = %v, want ErrUnsupportedPlatform", err)
	}
	if len(*calls) != 0 {
		t.Errorf("no command should run, got %d", len(*calls))
	}
}

func TestBuilder_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var calls int
	runner := func(context.Context, Command) (string, error) {
		calls++
		cancel()
		return "", nil
	}
	b := NewBuilder("/e", "flutter", WithBuilderRunFunc(runner))

	_, err := b.Build(ctx, BuildOptions{Platform: Detect("linux"), GamePath: "/g"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Build() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestBuilder_RetriesPubGet(t *testing.T) {
	t.Parallel()

	var calls []string
	failures := 2
	runner := func(_ context.Context, cmd Command) (string, error) {
		line := strings.Join(cmd.Args, " ")
		calls = append(calls, line)
		if line == "pub get" && failures > 0 {
			failures--
			return "", &CommandError{Command: cmd.Name, Args: cmd.Args, Err: errors.New("exit status 69")}
		}
		return "", nil
	}
	rep := &recordingReporter{}
	b := NewBuilder("/Engine", "flutter",
		WithBuilderRunFunc(runner),
		WithLauncherIcons(false),
		WithRetries(3, time.Millisecond),
		WithBuilderReporter(rep),
	)

	if _, err := b.Build(context.Background(), BuildOptions{Platform: Detect("linux")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"clean", "pub get", "pub get", "pub get", "run -d linux --dart-define=SAKI_GAME_PATH="}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %q\nwant %q", calls, want)
	}
	warnings := 0
	for _, e := range rep.events {
		if e == "warn:dependencies" {
			warnings++
		}
	}
	if warnings != 2 {
		t.Errorf("retry warnings = %d, want 2 (events %v)", warnings, rep.events)
	}
}

func TestBuilder_RetriesExhausted(t *testing.T) {
	t.Parallel()

	runner, calls := recordCalls(map[string]error{
		"pub get": &CommandError{Command: "flutter", Args: []string{"pub", "get"}, Err: errors.New("exit status 69")},
	})
	b := NewBuilder("/Engine", "flutter",
		WithBuilderRunFunc(runner),
		WithRetries(1, time.Millisecond),
	)

	_, err := b.Build(context.Background(), BuildOptions{Platform: Detect("linux")})
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("error = %v, want ErrCommandFailed", err)
	}
	if len(*calls) != 3 {
		t.Errorf("calls = %q, want clean and two pub get attempts", argLines(*calls))
	}
}
