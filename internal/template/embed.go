package template

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed all:templates
var embeddedFS embed.FS

// EmbeddedTemplates returns the embedded template filesystem rooted at the
// templates directory.
func EmbeddedTemplates() (fs.FS, error) {
	sub, err := fs.Sub(embeddedFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("template: open embedded templates: %w", err)
	}
	return sub, nil
}
