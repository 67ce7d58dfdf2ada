package template

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Emitter writes the planned file set into a generated project, rendering
// parameterized templates and copying static files verbatim. Existing files
// at the destination are overwritten; the generated skeleton is the source
// of truth at scaffold time.
type Emitter struct {
	fsys     fs.FS
	renderer Renderer
	plan     []File
}

// NewEmitter creates an Emitter over the given filesystem using the
// default project plan.
func NewEmitter(fsys fs.FS) *Emitter {
	return &Emitter{fsys: fsys, renderer: NewRenderer(fsys), plan: ProjectFiles}
}

// NewEmitterWithPlan creates an Emitter with a custom plan (for tests).
func NewEmitterWithPlan(fsys fs.FS, plan []File) *Emitter {
	return &Emitter{fsys: fsys, renderer: NewRenderer(fsys), plan: plan}
}

// Emit writes every file of the given stage under projectRoot in
// dependency order and returns the project-relative paths written.
func (e *Emitter) Emit(ctx context.Context, projectRoot string, stage Stage, data *Context) ([]string, error) {
	order, err := EmissionOrder(e.plan, stage)
	if err != nil {
		return nil, err
	}

	projectRoot = filepath.Clean(projectRoot)
	written := make([]string, 0, len(order))

	for _, f := range order {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		var content []byte
		switch f.Kind() {
		case Parameterized:
			content, err = e.renderer.Render(f.Source, data)
			if err != nil {
				return written, fmt.Errorf("render %s: %w", f.Source, err)
			}
		case Static:
			content, err = fs.ReadFile(e.fsys, f.Source)
			if err != nil {
				return written, fmt.Errorf("%w: %s", ErrTemplateNotFound, f.Source)
			}
		}

		destPath := filepath.Join(projectRoot, filepath.FromSlash(f.OutputPath))
		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return written, fmt.Errorf("mkdir for %s: %w", f.OutputPath, err)
		}
		if err := os.WriteFile(destPath, content, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", f.OutputPath, err)
		}
		written = append(written, f.OutputPath)
	}

	return written, nil
}
