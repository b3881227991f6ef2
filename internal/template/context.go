package template

import "strings"

// ProjectContext provides data for rendering content project scaffolding.
// All fields are exported for use with text/template.
type ProjectContext struct {
	ProjectName  string
	ProjectLower string
	BundleID     string
	PrimaryColor string // six hex digits without #
	RGBColor     string // rgb(r, g, b)
	Version      string // tool version that generated the project
}

// ContextOption configures a ProjectContext.
type ContextOption func(*ProjectContext)

// NewProjectContext builds a ProjectContext from options.
func NewProjectContext(opts ...ContextOption) *ProjectContext {
	ctx := &ProjectContext{}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// WithProject sets the project name and its lower-case form.
func WithProject(name string) ContextOption {
	return func(c *ProjectContext) {
		c.ProjectName = name
		c.ProjectLower = strings.ToLower(name)
	}
}

// WithBundleID sets the application bundle id.
func WithBundleID(id string) ContextOption {
	return func(c *ProjectContext) { c.BundleID = id }
}

// WithColor sets the primary colour in hex and rgb forms.
func WithColor(hex, rgb string) ContextOption {
	return func(c *ProjectContext) {
		c.PrimaryColor = hex
		c.RGBColor = rgb
	}
}

// WithVersion sets the generating tool version.
func WithVersion(v string) ContextOption {
	return func(c *ProjectContext) { c.Version = v }
}
