package toolchain

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Command is one tool invocation. When Stdout is nil the combined output is
// captured and returned; otherwise output streams to Stdout and Stderr.
type Command struct {
	Dir    string
	Name   string
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

// RunFunc executes a command and returns its captured output.
type RunFunc func(ctx context.Context, cmd Command) (string, error)

// defaultRun executes cmd with os/exec.
func defaultRun(ctx context.Context, c Command) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
		cmd.Stderr = c.Stderr
		if cmd.Stderr == nil {
			cmd.Stderr = c.Stdout
		}
		return "", wrapRunError(c, "", cmd.Run())
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), wrapRunError(c, out.String(), err)
}

func wrapRunError(c Command, output string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandError{Command: c.Name, Args: c.Args, Output: output, Err: err}
}
