package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Config = %+v, want defaults", cfg)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.EagerRows != 3 || cfg.TileWidth != 18 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
base_url: http://example.test/api
wrap_around: true
eager_rows: 5
tile_width: 24
fetch_timeout: 3s
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "http://example.test/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if !cfg.WrapAround {
		t.Error("WrapAround should be true")
	}
	if cfg.EagerRows != 5 {
		t.Errorf("EagerRows = %d, want 5", cfg.EagerRows)
	}
	if cfg.FetchTimeout.Std() != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.FetchTimeout.Std())
	}
	// Untouched keys keep their defaults.
	if cfg.TileGap != 2 {
		t.Errorf("TileGap = %d, want default 2", cfg.TileGap)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tile_width: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
}

func TestLoad_NormalizesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
eager_rows: -2
tile_width: 1
preload_margin: -1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	def := Default()
	if cfg.EagerRows != def.EagerRows {
		t.Errorf("EagerRows = %d, want default %d", cfg.EagerRows, def.EagerRows)
	}
	if cfg.TileWidth != def.TileWidth {
		t.Errorf("TileWidth = %d, want default %d", cfg.TileWidth, def.TileWidth)
	}
	if cfg.PreloadMargin != def.PreloadMargin {
		t.Errorf("PreloadMargin = %d, want default %d", cfg.PreloadMargin, def.PreloadMargin)
	}
}
