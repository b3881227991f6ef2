package pipeline

import (
	"io"
	"log/slog"
)

// Step names reported by the pipeline.
const (
	StepIdentity = "identity"
	StepSync     = "sync"
	StepManifest = "manifest"
)

// Reporter receives step progress. Implementations decide presentation; the
// pipeline never writes to the console directly.
type Reporter interface {
	StepStart(step, message string)
	StepComplete(step, message string)
	Warn(step string, err error)
	StepError(step string, err error)
}

// NoOpReporter discards all progress.
type NoOpReporter struct{}

// StepStart implements Reporter.
func (NoOpReporter) StepStart(string, string) {}

// StepComplete implements Reporter.
func (NoOpReporter) StepComplete(string, string) {}

// Warn implements Reporter.
func (NoOpReporter) Warn(string, error) {}

// StepError implements Reporter.
func (NoOpReporter) StepError(string, error) {}

// LogReporter forwards progress to a structured logger.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a LogReporter. A nil logger discards output.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogReporter{logger: logger}
}

// StepStart implements Reporter.
func (r *LogReporter) StepStart(step, message string) {
	r.logger.Info(message, "step", step, "phase", "start")
}

// StepComplete implements Reporter.
func (r *LogReporter) StepComplete(step, message string) {
	r.logger.Info(message, "step", step, "phase", "done")
}

// Warn implements Reporter.
func (r *LogReporter) Warn(step string, err error) {
	r.logger.Warn(err.Error(), "step", step)
}

// StepError implements Reporter.
func (r *LogReporter) StepError(step string, err error) {
	r.logger.Error(err.Error(), "step", step)
}

var (
	_ Reporter = NoOpReporter{}
	_ Reporter = (*LogReporter)(nil)
)
