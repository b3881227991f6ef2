// Package project models content projects under the workspace Game/
// directory: listing them, tracking the active one, reading identity
// descriptors, validating user input, and scaffolding new projects.
package project

import (
	"errors"
	"fmt"
)

// Sentinel errors for the project package.
var (
	// ErrWorkspaceNotFound indicates no workspace root was found above the start directory.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrProjectNotFound indicates the named content project does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrNoProjects indicates the Game directory holds no content projects.
	ErrNoProjects = errors.New("no content projects found")

	// ErrNoActiveProject indicates the active project marker is missing or empty.
	ErrNoActiveProject = errors.New("no active project")

	// ErrProjectExists indicates a project with the same name already exists.
	ErrProjectExists = errors.New("project already exists")

	// ErrCancelled indicates the user declined to continue.
	ErrCancelled = errors.New("cancelled by user")

	// ErrInvalidDescriptor indicates the identity descriptor is missing or malformed.
	ErrInvalidDescriptor = errors.New("invalid identity descriptor")

	// ErrInvalidName indicates a project name with disallowed characters.
	ErrInvalidName = errors.New("invalid project name: use letters, digits, underscore and hyphen only")

	// ErrInvalidBundleID indicates a bundle id not in reverse-domain form.
	ErrInvalidBundleID = errors.New("invalid bundle id: use the com.company.app form")

	// ErrInvalidColor indicates a colour that is not six hex digits.
	ErrInvalidColor = errors.New("invalid colour: use six hex digits, e.g. 137B8B")
)

// ValidationError represents a single validation failure with field context.
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: %s: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}
