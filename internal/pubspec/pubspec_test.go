package pubspec

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePubspec = `name: sample_app
description: "A new Flutter project."
publish_to: 'none'

version: 1.0.0+1

environment:
  sdk: ^3.5.0

dependencies:
  flutter:
    sdk: flutter
  cupertino_icons: ^1.0.8

dev_dependencies:
  flutter_test:
    sdk: flutter
  flutter_lints: ^4.0.0

flutter:
  uses-material-design: true
`

func TestAddDependencies(t *testing.T) {
	t.Run("inserts_before_dev_dependencies", func(t *testing.T) {
		doc, err := Parse([]byte(samplePubspec))
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}

		added, err := doc.AddDependencies("State management and dependency injection", StateDependencies)
		if err != nil {
			t.Fatalf("AddDependencies error: %v", err)
		}
		if added != 3 {
			t.Errorf("added = %d, want 3", added)
		}

		out, err := doc.Marshal()
		if err != nil {
			t.Fatalf("Marshal error: %v", err)
		}
		text := string(out)

		for _, dep := range []string{"flutter_riverpod", "path_provider", "go_router"} {
			idx := strings.Index(text, dep)
			if idx < 0 {
				t.Fatalf("output missing dependency %q", dep)
			}
			if devIdx := strings.Index(text, "dev_dependencies:"); idx > devIdx {
				t.Errorf("dependency %q appears after dev_dependencies", dep)
			}
		}
	})

	t.Run("missing_anchor_is_reported", func(t *testing.T) {
		doc, err := Parse([]byte("name: sample_app\nversion: 1.0.0+1\n"))
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		_, err = doc.AddDependencies("", StateDependencies)
		if !errors.Is(err, ErrNoDevDependencies) {
			t.Errorf("err = %v, want ErrNoDevDependencies", err)
		}
	})

	t.Run("repeated_application_is_noop", func(t *testing.T) {
		doc, err := Parse([]byte(samplePubspec))
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if _, err := doc.AddDependencies("", StateDependencies); err != nil {
			t.Fatalf("first AddDependencies error: %v", err)
		}
		added, err := doc.AddDependencies("", StateDependencies)
		if err != nil {
			t.Fatalf("second AddDependencies error: %v", err)
		}
		if added != 0 {
			t.Errorf("second application added %d entries, want 0", added)
		}

		out, _ := doc.Marshal()
		if n := strings.Count(string(out), "flutter_riverpod"); n != 1 {
			t.Errorf("flutter_riverpod declared %d times, want 1", n)
		}
	})

	t.Run("creates_dependencies_mapping_when_absent", func(t *testing.T) {
		doc, err := Parse([]byte("name: sample_app\ndev_dependencies:\n  flutter_test:\n    sdk: flutter\n"))
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		added, err := doc.AddDependencies("", BackendDependencies)
		if err != nil {
			t.Fatalf("AddDependencies error: %v", err)
		}
		if added != 1 {
			t.Errorf("added = %d, want 1", added)
		}
		out, _ := doc.Marshal()
		text := string(out)
		if strings.Index(text, "dependencies:") > strings.Index(text, "dev_dependencies:") {
			t.Error("created dependencies mapping is not before dev_dependencies")
		}
	})

	t.Run("rest_of_document_unchanged", func(t *testing.T) {
		doc, err := Parse([]byte(samplePubspec))
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if _, err := doc.AddDependencies("", StateDependencies); err != nil {
			t.Fatalf("AddDependencies error: %v", err)
		}
		out, _ := doc.Marshal()
		text := string(out)
		for _, keep := range []string{"name: sample_app", "cupertino_icons: ^1.0.8", "flutter_lints: ^4.0.0", "uses-material-design: true"} {
			if !strings.Contains(text, keep) {
				t.Errorf("output lost existing content %q", keep)
			}
		}
	})
}

func TestEnsureMaterialDesign(t *testing.T) {
	t.Run("already_present_is_noop", func(t *testing.T) {
		doc, _ := Parse([]byte(samplePubspec))
		if changed := doc.EnsureMaterialDesign(); changed {
			t.Error("EnsureMaterialDesign changed a document that already had the flag")
		}
	})

	t.Run("appends_missing_section", func(t *testing.T) {
		doc, _ := Parse([]byte("name: sample_app\ndev_dependencies:\n  flutter_test:\n    sdk: flutter\n"))
		if changed := doc.EnsureMaterialDesign(); !changed {
			t.Fatal("EnsureMaterialDesign did not change the document")
		}
		out, _ := doc.Marshal()
		if !strings.Contains(string(out), "uses-material-design: true") {
			t.Error("output missing uses-material-design flag")
		}
		// Idempotent on a second pass.
		if changed := doc.EnsureMaterialDesign(); changed {
			t.Error("second EnsureMaterialDesign changed the document again")
		}
	})

	t.Run("flips_false_flag", func(t *testing.T) {
		doc, _ := Parse([]byte("name: sample_app\nflutter:\n  uses-material-design: false\n"))
		if changed := doc.EnsureMaterialDesign(); !changed {
			t.Fatal("EnsureMaterialDesign did not flip the flag")
		}
		out, _ := doc.Marshal()
		if !strings.Contains(string(out), "uses-material-design: true") {
			t.Error("flag was not set to true")
		}
	})
}

func TestSetInitialVersion(t *testing.T) {
	t.Run("rewrites_default_version", func(t *testing.T) {
		doc, _ := Parse([]byte(samplePubspec))
		if changed := doc.SetInitialVersion(); !changed {
			t.Fatal("SetInitialVersion did not change the default version")
		}
		out, _ := doc.Marshal()
		if !strings.Contains(string(out), "version: 0.0.1+1") {
			t.Error("output missing version: 0.0.1+1")
		}
	})

	t.Run("leaves_edited_version", func(t *testing.T) {
		doc, _ := Parse([]byte("name: sample_app\nversion: 2.3.4+7\n"))
		if changed := doc.SetInitialVersion(); changed {
			t.Error("SetInitialVersion changed a non-default version")
		}
	})
}

func TestLoadAndSave(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "pubspec.yaml")
		if err := os.WriteFile(path, []byte(samplePubspec), 0o644); err != nil {
			t.Fatal(err)
		}

		err := Patch(path, func(doc *Document) error {
			_, err := doc.AddDependencies("Backend communication", BackendDependencies)
			return err
		})
		if err != nil {
			t.Fatalf("Patch error: %v", err)
		}

		reloaded, err := Load(path)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if !reloaded.HasDependency("dio") {
			t.Error("reloaded document missing dio dependency")
		}

		// No temp file debris left behind.
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries after Patch, want 1", len(entries))
		}
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "pubspec.yaml"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid_yaml", func(t *testing.T) {
		_, err := Parse([]byte("name: [unclosed"))
		if !errors.Is(err, ErrInvalidYAML) {
			t.Errorf("err = %v, want ErrInvalidYAML", err)
		}
	})
}
