package template

import (
	"errors"
	"slices"
	"testing"
)

func TestEmissionOrder(t *testing.T) {
	t.Run("references_before_dependents", func(t *testing.T) {
		order, err := EmissionOrder(ProjectFiles, StageCore)
		if err != nil {
			t.Fatalf("EmissionOrder error: %v", err)
		}
		if len(order) != 7 {
			t.Fatalf("core stage has %d files, want 7", len(order))
		}

		pos := make(map[string]int, len(order))
		for i, f := range order {
			pos[f.OutputPath] = i
		}
		for _, f := range order {
			for _, ref := range f.References {
				if pos[ref] >= pos[f.OutputPath] {
					t.Errorf("%s emitted before its reference %s", f.OutputPath, ref)
				}
			}
		}
	})

	t.Run("backend_stage", func(t *testing.T) {
		order, err := EmissionOrder(ProjectFiles, StageBackend)
		if err != nil {
			t.Fatalf("EmissionOrder error: %v", err)
		}
		if len(order) != 1 || order[0].OutputPath != "lib/core/backend/api_client.dart" {
			t.Errorf("backend stage = %v, want only the API client", order)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := EmissionOrder(ProjectFiles, StageCore)
		if err != nil {
			t.Fatal(err)
		}
		second, err := EmissionOrder(ProjectFiles, StageCore)
		if err != nil {
			t.Fatal(err)
		}
		firstPaths := outputPaths(first)
		if !slices.Equal(firstPaths, outputPaths(second)) {
			t.Error("two runs produced different orders")
		}
	})

	t.Run("unknown_reference", func(t *testing.T) {
		plan := []File{
			{Source: "a.tmpl", OutputPath: "a", References: []string{"missing"}},
		}
		_, err := EmissionOrder(plan, StageCore)
		if !errors.Is(err, ErrUnknownReference) {
			t.Errorf("err = %v, want ErrUnknownReference", err)
		}
	})

	t.Run("cycle_detected", func(t *testing.T) {
		plan := []File{
			{Source: "a.tmpl", OutputPath: "a", References: []string{"b"}},
			{Source: "b.tmpl", OutputPath: "b", References: []string{"a"}},
		}
		_, err := EmissionOrder(plan, StageCore)
		if !errors.Is(err, ErrReferenceCycle) {
			t.Errorf("err = %v, want ErrReferenceCycle", err)
		}
	})
}

func TestFileKind(t *testing.T) {
	if (File{Source: "lib/main.dart.tmpl"}).Kind() != Parameterized {
		t.Error(".tmpl source not classified as Parameterized")
	}
	if (File{Source: "lib/theme/app_theme.dart"}).Kind() != Static {
		t.Error("plain source not classified as Static")
	}
}

func TestPlanMatchesEmbeddedFS(t *testing.T) {
	fsys, err := EmbeddedTemplates()
	if err != nil {
		t.Fatalf("EmbeddedTemplates error: %v", err)
	}
	for _, f := range ProjectFiles {
		if _, err := fsys.Open(f.Source); err != nil {
			t.Errorf("plan entry %s has no embedded source: %v", f.Source, err)
		}
	}
}

func outputPaths(files []File) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.OutputPath
	}
	return paths
}
