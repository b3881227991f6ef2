package template

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestRender(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"readme.tmpl":  {Data: []byte("# {{.ProjectName}}\n\nVersion: {{.Version}}\n")},
		"configs.tmpl": {Data: []byte("theme: color={{.RGBColor}}\nmodule: {{.ProjectLower}}\n")},
		"color.tmpl":   {Data: []byte("Color({{argb .PrimaryColor}}) {{lower .ProjectName}}")},
		"dart.tmpl":    {Data: []byte("print('${title} $count {{.ProjectName}}');")},
		"empty.tmpl":   {Data: nil},
	}
	ctx := NewProjectContext(
		WithProject("MyGame"),
		WithColor("137b8b", "rgb(19, 123, 139)"),
		WithVersion("v1.0.0"),
	)

	tests := []struct {
		name string
		file string
		want string
	}{
		{"fields", "readme.tmpl", "# MyGame\n\nVersion: v1.0.0\n"},
		{"derived fields", "configs.tmpl", "theme: color=rgb(19, 123, 139)\nmodule: mygame\n"},
		{"funcs", "color.tmpl", "Color(0xFF137B8B) mygame"},
		{"dart interpolation passes through", "dart.tmpl", "print('${title} $count MyGame');"},
		{"empty", "empty.tmpl", ""},
	}
	r := NewRenderer(fsys)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.file, ctx)
			if err != nil {
				t.Fatalf("Render(%s) error: %v", tt.file, err)
			}
			if string(got) != tt.want {
				t.Errorf("Render(%s) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"missing.tmpl":  {Data: []byte("Hello {{.Name}}, your id is {{.BundleID}}")},
		"literal.tmpl":  {Data: []byte(`keep {{"{{.Name}}"}}`)},
		"unclosed.tmpl": {Data: []byte("{{.Name")},
	}
	r := NewRenderer(fsys)
	data := map[string]string{"Name": "Demo"}

	if _, err := r.Render("missing.tmpl", data); !errors.Is(err, ErrMissingTemplateKey) {
		t.Errorf("missing key: err = %v, want ErrMissingTemplateKey", err)
	}
	if _, err := r.Render("literal.tmpl", data); !errors.Is(err, ErrUnexpandedToken) {
		t.Errorf("leftover action: err = %v, want ErrUnexpandedToken", err)
	}
	if _, err := r.Render("nope.tmpl", data); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("absent template: err = %v, want ErrTemplateNotFound", err)
	}
	_, err := r.Render("unclosed.tmpl", data)
	if err == nil || !strings.Contains(err.Error(), "parse template unclosed.tmpl") {
		t.Errorf("syntax error: err = %v", err)
	}
}

func TestRenderCachesParsedTemplates(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"a.tmpl": {Data: []byte("{{.ProjectName}}")}}
	r := NewRenderer(fsys)
	if _, err := r.Render("a.tmpl", NewProjectContext(WithProject("One"))); err != nil {
		t.Fatal(err)
	}

	// Replace the source; the cached parse keeps being used.
	fsys["a.tmpl"] = &fstest.MapFile{Data: []byte("changed")}
	got, err := r.Render("a.tmpl", NewProjectContext(WithProject("Two")))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Two" {
		t.Errorf("got %q, want the cached template executed with new data", got)
	}
}

func TestEmbeddedTemplatesRender(t *testing.T) {
	t.Parallel()

	fsys, err := EmbeddedTemplates()
	if err != nil {
		t.Fatalf("EmbeddedTemplates() error: %v", err)
	}
	ctx := NewProjectContext(
		WithProject("Demo"),
		WithBundleID("com.example.demo"),
		WithColor("137B8B", "rgb(19, 123, 139)"),
		WithVersion("v0.0.0"),
	)

	out, err := NewRenderer(fsys).Render(EngineModuleTpl, ctx)
	if err != nil {
		t.Fatalf("Render(%s) error: %v", EngineModuleTpl, err)
	}
	content := string(out)
	for _, want := range []string{"class DemoModule", "registerProjectModule('demo'", "Color(0xFF137B8B)"} {
		if !strings.Contains(content, want) {
			t.Errorf("module output missing %q", want)
		}
	}
}
