package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Org != "com.app.template" {
		t.Errorf("Org = %q", cfg.Org)
	}
	if !slices.Equal(cfg.Platforms, []string{"ios", "android", "web", "macos"}) {
		t.Errorf("Platforms = %v", cfg.Platforms)
	}
	if cfg.Device != "chrome" {
		t.Errorf("Device = %q", cfg.Device)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing_file_uses_defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), FileName))
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if cfg.Org != Default().Org {
			t.Errorf("Org = %q, want default", cfg.Org)
		}
	})

	t.Run("partial_file_keeps_defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		if err := os.WriteFile(path, []byte("org: io.example\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}
		if cfg.Org != "io.example" {
			t.Errorf("Org = %q, want io.example", cfg.Org)
		}
		if cfg.Device != "chrome" {
			t.Errorf("Device = %q, want default chrome", cfg.Device)
		}
	})

	t.Run("invalid_yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		if err := os.WriteFile(path, []byte("org: [unclosed"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if !errors.Is(err, ErrInvalidYAML) {
			t.Errorf("err = %v, want ErrInvalidYAML", err)
		}
	})

	t.Run("unknown_platform_rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		if err := os.WriteFile(path, []byte("platforms: [ios, dreamcast]\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("err = %v, want ErrInvalidConfig", err)
		}
	})
}
