package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "database.db" {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if len(cfg.Classifier.Labels) != 3 {
		t.Errorf("expected 3 classifier labels, got %d", len(cfg.Classifier.Labels))
	}
	if len(cfg.Tagging.Rules) != 3 || cfg.Tagging.DefaultTag != "general" {
		t.Errorf("unexpected tagging defaults: %+v", cfg.Tagging)
	}
	if cfg.Classifier.Timeout != 10*time.Second {
		t.Errorf("expected 10s classifier timeout, got %s", cfg.Classifier.Timeout)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: "9090"
  mode: release
database:
  driver: sqlite
  path: questions.db
tagging:
  default_tag: misc
  rules:
    - keyword: loop
      tag: control_flow
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Server.Port != "9090" || cfg.Server.Mode != "release" {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Database.Path != "questions.db" {
		t.Errorf("expected questions.db, got %s", cfg.Database.Path)
	}
	if len(cfg.Tagging.Rules) != 1 || cfg.Tagging.Rules[0].Tag != "control_flow" {
		t.Errorf("unexpected rules: %+v", cfg.Tagging.Rules)
	}
	if cfg.Tagging.DefaultTag != "misc" {
		t.Errorf("expected misc default tag, got %s", cfg.Tagging.DefaultTag)
	}
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	content := "database:\n  driver: oracle\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
