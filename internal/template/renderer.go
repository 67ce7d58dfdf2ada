// Package template renders the embedded Dart source templates that make up
// a generated project. Files carrying a .tmpl suffix are parameterized with
// the application name; everything else is emitted verbatim.
package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"regexp"
	"text/template"
)

// Context provides data for template rendering. All fields are exported for
// use with Go's text/template package.
type Context struct {
	// AppName is the validated application identifier. It becomes the Dart
	// package namespace in imports and the literal app title.
	AppName string
}

// unexpandedTokenPattern detects leftover template tokens in rendered
// output. Only Go-template style tokens are checked: Dart source uses
// $variable and ${expr} interpolation legitimately.
var unexpandedTokenPattern = regexp.MustCompile(`\{\{\.?[A-Za-z_][A-Za-z0-9_.]*\}\}`)

// Renderer renders Go text/template files with strict mode enabled.
type Renderer interface {
	// Render parses the named template from the backing filesystem and
	// executes it with the given data. Returns ErrMissingTemplateKey if a
	// key is missing and ErrUnexpandedToken if tokens remain afterwards.
	Render(templateName string, data any) ([]byte, error)
}

// renderer is the concrete implementation of Renderer.
type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem.
// In production the fs.FS comes from go:embed; in tests use
// testing/fstest.MapFS.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// Render parses and executes a template with strict mode (missingkey=error).
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	tmpl, err := template.New(templateName).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}

	result := buf.Bytes()

	// Substitution must be total: no placeholder survives rendering.
	if loc := unexpandedTokenPattern.Find(result); loc != nil {
		return nil, fmt.Errorf("%w: found %q", ErrUnexpandedToken, string(loc))
	}

	return result, nil
}
