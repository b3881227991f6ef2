package mirror

import "errors"

// Sentinel errors for the mirror package.
var (
	// ErrFilesystem wraps any filesystem failure during a sync pass.
	ErrFilesystem = errors.New("filesystem error")

	// ErrMissingIcon is a non-fatal warning: neither the project nor the
	// workspace provides an icon.
	ErrMissingIcon = errors.New("no icon found in project or workspace")
)
