package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Platform is a host operating system as the engine build sees it.
type Platform struct {
	ID   string // macos, linux, windows or unknown
	Name string // display name
}

// Platform IDs.
const (
	PlatformMacOS   = "macos"
	PlatformLinux   = "linux"
	PlatformWindows = "windows"
	PlatformUnknown = "unknown"
)

// DeviceWeb is the flutter run device for web builds.
const DeviceWeb = "chrome"

// Detect maps a GOOS value to a Platform.
func Detect(goos string) Platform {
	switch goos {
	case "darwin":
		return Platform{ID: PlatformMacOS, Name: "macOS"}
	case "linux":
		return Platform{ID: PlatformLinux, Name: "Linux"}
	case "windows":
		return Platform{ID: PlatformWindows, Name: "Windows"}
	default:
		return Platform{ID: PlatformUnknown, Name: "Unknown"}
	}
}

// Current returns the host platform.
func Current() Platform {
	return Detect(runtime.GOOS)
}

// Supported reports whether the platform has a desktop run target.
func (p Platform) Supported() bool {
	return p.ID != PlatformUnknown
}

// Device returns the flutter run device for the platform, or DeviceWeb when
// web is set.
func (p Platform) Device(web bool) (string, error) {
	if web {
		return DeviceWeb, nil
	}
	if !p.Supported() {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, p.Name)
	}
	return p.ID, nil
}

// Checker verifies that the Flutter SDK is usable.
type Checker struct {
	flutter string
	run     RunFunc
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithCheckerRunFunc sets a custom command runner (used for testing).
func WithCheckerRunFunc(fn RunFunc) CheckerOption {
	return func(c *Checker) { c.run = fn }
}

// NewChecker creates a Checker that runs the given flutter executable.
func NewChecker(flutter string, opts ...CheckerOption) *Checker {
	c := &Checker{flutter: flutter, run: defaultRun}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs flutter --version and returns the first line of its output.
func (c *Checker) Check(ctx context.Context) (string, error) {
	out, err := c.run(ctx, Command{Name: c.flutter, Args: []string{"--version"}})
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s is not on PATH", ErrToolchainMissing, c.flutter)
		}
		return "", fmt.Errorf("%w: %w", ErrToolchainMissing, err)
	}
	first, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(first), nil
}
