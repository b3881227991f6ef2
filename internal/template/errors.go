// Package template renders and deploys the embedded scaffolding used when a
// new content project is created.
package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrTemplateNotFound indicates the named template is not embedded.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrMissingTemplateKey indicates a template referenced data that was not provided.
	ErrMissingTemplateKey = errors.New("template: missing key")

	// ErrUnexpandedToken indicates rendered output still contains a template action.
	ErrUnexpandedToken = errors.New("template: unexpanded token in output")

	// ErrPathTraversal indicates a template path would escape the destination root.
	ErrPathTraversal = errors.New("template: path escapes destination root")
)
