// Package toolchain drives the external Flutter and Dart tools: platform
// detection, the clean/get/icons/run build sequence, and applying an
// application identity to the engine project.
package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for toolchain operations.
var (
	// ErrUnsupportedPlatform indicates the host OS has no desktop run target.
	ErrUnsupportedPlatform = errors.New("toolchain: unsupported platform")

	// ErrToolchainMissing indicates flutter or dart could not be executed.
	ErrToolchainMissing = errors.New("toolchain: flutter SDK not found")

	// ErrCommandFailed indicates a tool exited unsuccessfully.
	ErrCommandFailed = errors.New("toolchain: command failed")
)

// CommandError describes a failed tool invocation.
type CommandError struct {
	Command string
	Args    []string
	Output  string
	Err     error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Command, strings.Join(e.Args, " "), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + lastLine(out)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is makes every CommandError match ErrCommandFailed.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
