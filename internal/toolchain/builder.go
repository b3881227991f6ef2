package toolchain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sakiengine/saki/internal/core/pipeline"
	"github.com/sakiengine/saki/internal/resilience"
)

// Build step names.
const (
	StepClean        = "clean"
	StepDependencies = "dependencies"
	StepIcons        = "icons"
	StepRun          = "run"
)

// Step is one command of the build sequence.
type Step struct {
	Name     string
	Args     []string
	Optional bool // failure is reported as a warning
	Retries  int  // extra attempts after a failed run
}

// BuildOptions selects what to run.
type BuildOptions struct {
	Platform Platform
	Web      bool
	GamePath string // absolute content project root passed to the engine
}

// BuildResult summarizes a build.
type BuildResult struct {
	Device   string
	Warnings []error
}

// Builder runs the flutter build sequence inside the engine directory.
type Builder struct {
	engineDir     string
	flutter       string
	launcherIcons bool
	retries       int
	retryDelay    time.Duration
	run           RunFunc
	stdout        io.Writer
	stderr        io.Writer
	reporter      pipeline.Reporter
	logger        *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderRunFunc sets a custom command runner (used for testing).
func WithBuilderRunFunc(fn RunFunc) BuilderOption {
	return func(b *Builder) { b.run = fn }
}

// WithOutput sets where tool output streams.
func WithOutput(stdout, stderr io.Writer) BuilderOption {
	return func(b *Builder) {
		b.stdout = stdout
		b.stderr = stderr
	}
}

// WithLauncherIcons toggles the launcher icon generation step.
func WithLauncherIcons(enabled bool) BuilderOption {
	return func(b *Builder) { b.launcherIcons = enabled }
}

// WithRetries retries flutter pub get up to n times, waiting delay before
// the first retry and doubling after that.
func WithRetries(n int, delay time.Duration) BuilderOption {
	return func(b *Builder) {
		b.retries = n
		b.retryDelay = delay
	}
}

// WithBuilderReporter sets the progress reporter.
func WithBuilderReporter(r pipeline.Reporter) BuilderOption {
	return func(b *Builder) {
		if r != nil {
			b.reporter = r
		}
	}
}

// WithBuilderLogger sets the logger.
func WithBuilderLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a Builder for the engine at engineDir, an OS path.
func NewBuilder(engineDir, flutter string, opts ...BuilderOption) *Builder {
	b := &Builder{
		engineDir:     engineDir,
		flutter:       flutter,
		launcherIcons: true,
		retryDelay:    time.Second,
		run:           defaultRun,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		reporter:      pipeline.NoOpReporter{},
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Plan returns the steps Build would run.
func (b *Builder) Plan(opts BuildOptions) ([]Step, string, error) {
	device, err := opts.Platform.Device(opts.Web)
	if err != nil {
		return nil, "", err
	}
	steps := []Step{
		{Name: StepClean, Args: []string{"clean"}},
		{Name: StepDependencies, Args: []string{"pub", "get"}, Retries: b.retries},
	}
	if b.launcherIcons {
		steps = append(steps, Step{Name: StepIcons, Args: []string{"pub", "run", "flutter_launcher_icons:main"}, Optional: true})
	}
	steps = append(steps, Step{
		Name: StepRun,
		Args: []string{"run", "-d", device, "--dart-define=SAKI_GAME_PATH=" + opts.GamePath},
	})
	return steps, device, nil
}

// Build runs the plan in order. Optional steps that fail become warnings;
// any other failure stops the build.
func (b *Builder) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	steps, device, err := b.Plan(opts)
	if err != nil {
		return nil, err
	}
	result := &BuildResult{Device: device}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		line := b.flutter + " " + strings.Join(step.Args, " ")
		b.reporter.StepStart(step.Name, line)
		b.logger.Debug("running build step", "step", step.Name, "dir", b.engineDir, "args", step.Args)

		err := b.runStep(ctx, step)
		if err != nil {
			if step.Optional {
				warning := fmt.Errorf("%s failed, continuing: %w", step.Name, err)
				result.Warnings = append(result.Warnings, warning)
				b.reporter.Warn(step.Name, warning)
				continue
			}
			b.reporter.StepError(step.Name, err)
			return result, fmt.Errorf("build step %s: %w", step.Name, err)
		}
		b.reporter.StepComplete(step.Name, line)
	}
	return result, nil
}

// runStep runs one step, retrying failed commands as the step allows.
func (b *Builder) runStep(ctx context.Context, step Step) error {
	cmd := Command{
		Dir:    b.engineDir,
		Name:   b.flutter,
		Args:   step.Args,
		Stdout: b.stdout,
		Stderr: b.stderr,
	}
	policy := resilience.Policy{
		MaxRetries: step.Retries,
		BaseDelay:  b.retryDelay,
		MaxDelay:   10 * b.retryDelay,
		Retryable:  []error{ErrCommandFailed},
		OnRetry: func(attempt int, err error, delay time.Duration) {
			b.reporter.Warn(step.Name, fmt.Errorf("attempt %d failed, retrying in %s: %w", attempt, delay.Round(time.Millisecond), err))
		},
	}
	return resilience.Retry(ctx, policy, func() error {
		_, err := b.run(ctx, cmd)
		return err
	})
}
