package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"sync"
	"text/template"
)

// funcs are available to every scaffolding template.
var funcs = template.FuncMap{
	"lower": strings.ToLower,
	// argb turns six hex digits into a Flutter Color literal.
	"argb": func(hex string) string {
		return "0xFF" + strings.ToUpper(strings.TrimPrefix(hex, "#"))
	},
}

// leftoverDelims finds template actions that survived rendering, which
// happens when a template writes delimiters literally. Dart and .sks
// interpolation such as ${name} is legal output and is not matched.
var leftoverDelims = regexp.MustCompile(`\{\{[^{}]*\}\}`)

// Renderer executes one template of a template tree.
type Renderer interface {
	// Render executes the named template with data. Missing keys fail with
	// ErrMissingTemplateKey; output that still holds {{ }} actions fails
	// with ErrUnexpandedToken.
	Render(name string, data any) ([]byte, error)
}

type fsRenderer struct {
	fsys fs.FS

	mu     sync.Mutex
	parsed map[string]*template.Template
}

// NewRenderer returns a Renderer reading templates from fsys. Parsed
// templates are cached for the life of the Renderer.
func NewRenderer(fsys fs.FS) Renderer {
	return &fsRenderer{fsys: fsys, parsed: make(map[string]*template.Template)}
}

func (r *fsRenderer) Render(name string, data any) ([]byte, error) {
	tmpl, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingTemplateKey, name, err)
	}
	if left := leftoverDelims.Find(buf.Bytes()); left != nil {
		return nil, fmt.Errorf("%w: %s: %q", ErrUnexpandedToken, name, left)
	}
	return buf.Bytes(), nil
}

func (r *fsRenderer) lookup(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.parsed[name]; ok {
		return tmpl, nil
	}
	src, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	r.parsed[name] = tmpl
	return tmpl, nil
}
