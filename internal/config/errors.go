// Package config loads the optional saki.yaml workspace configuration, applies
// .env and SAKI_* environment overrides, validates the result and provides
// thread-safe access to it.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrNotInitialized indicates the Manager has not been initialized via Load().
	ErrNotInitialized = errors.New("config: manager not initialized, call Load() first")

	// ErrUnknownSection indicates saki.yaml holds a top-level key that is not a section.
	ErrUnknownSection = errors.New("config: unknown section")

	// ErrDynamicToken indicates an unexpanded dynamic token was detected in a config value.
	ErrDynamicToken = errors.New("config: unexpanded dynamic token detected")

	// ErrInvalidYAML indicates invalid YAML syntax in the configuration file.
	ErrInvalidYAML = errors.New("config: invalid YAML syntax")

	// ErrConfigExists indicates saki.yaml already exists and would be overwritten.
	ErrConfigExists = errors.New("config: configuration file already exists")
)

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string // dotted key, e.g. fonts.bundled.weight
	Message string
	Value   any
	Wrapped error
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// ValidationErrors collects every invalid field of one configuration.
// Source names the file the values came from, or is empty for defaults and
// environment overrides alone.
type ValidationErrors struct {
	Source string
	Errors []ValidationError
}

func (e *ValidationErrors) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(": ")
	}
	switch len(e.Errors) {
	case 0:
		b.WriteString("invalid configuration")
	case 1:
		b.WriteString(e.Errors[0].Error())
	default:
		fmt.Fprintf(&b, "%d invalid fields: ", len(e.Errors))
		for i := range e.Errors {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(e.Errors[i].Error())
		}
	}
	return b.String()
}

// Is matches ErrInvalidConfig and every sentinel wrapped by a field error.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidConfig {
		return true
	}
	return slices.ContainsFunc(e.Errors, func(ve ValidationError) bool {
		return ve.Wrapped != nil && errors.Is(ve.Wrapped, target)
	})
}
