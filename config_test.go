package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_WindowPlan(t *testing.T) {
	cfg := defaultConfig()
	if len(cfg.Windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(cfg.Windows))
	}
	if cfg.Windows[0].Name != "editor" || cfg.Windows[0].Command != "" {
		t.Fatalf("unexpected first window %+v", cfg.Windows[0])
	}
	if cfg.Windows[1].Name != "agent" || cfg.Windows[1].Command != defaultAgentCommand {
		t.Fatalf("unexpected agent window %+v", cfg.Windows[1])
	}
	if cfg.Windows[2].Name != "shell" || cfg.Windows[2].Command != "" {
		t.Fatalf("unexpected shell window %+v", cfg.Windows[2])
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	original := Config{Windows: []TmuxWindow{
		{Name: "editor", Command: "nvim"},
		{Name: "ログ", Command: "tail -f log.txt"},
		{Name: "shell"},
	}}

	if err := SaveConfigToPath(original, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadConfigFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Windows) != len(original.Windows) {
		t.Fatalf("expected %d windows, got %d", len(original.Windows), len(loaded.Windows))
	}
	for i := range original.Windows {
		if loaded.Windows[i] != original.Windows[i] {
			t.Fatalf("window %d changed across round-trip: %+v vs %+v",
				i, original.Windows[i], loaded.Windows[i])
		}
	}
}

func TestLoadConfigFromPath_ParsesWindowTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[[windows]]
name = "editor"
command = "nvim"

[[windows]]
name = "shell"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfigFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(cfg.Windows))
	}
	if cfg.Windows[0].Command != "nvim" {
		t.Fatalf("expected nvim command, got %q", cfg.Windows[0].Command)
	}
	if cfg.Windows[1].Command != "" {
		t.Fatalf("expected empty command, got %q", cfg.Windows[1].Command)
	}
}

func TestLoadConfigFromPath_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("this is not toml {["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfigFromPath(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadConfigFromPath_MissingFile(t *testing.T) {
	if _, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
