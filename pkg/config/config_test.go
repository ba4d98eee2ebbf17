package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingDefaultPathReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	old, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(old)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Output.Format != "human" {
		t.Errorf("got format %q, want human", cfg.Output.Format)
	}
	if cfg.Diff.ContextLines != 3 {
		t.Errorf("got context_lines %d, want 3", cfg.Diff.ContextLines)
	}
}

func TestLoadConfig_MissingExplicitPathErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatal("expected an error for a missing explicit config path")
	}
}

func TestLoadConfig_ParsesAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "githunk.yml")
	content := "version: \"1\"\noutput:\n  format: porcelain\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Output.Format != "porcelain" {
		t.Errorf("got format %q, want porcelain", cfg.Output.Format)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("got color %q, want auto (default)", cfg.Output.Color)
	}
}
