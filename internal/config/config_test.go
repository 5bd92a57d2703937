package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PublishBranch != "gh-pages" {
		t.Errorf("PublishBranch = %q, expected gh-pages", cfg.PublishBranch)
	}
	if cfg.Remote != "origin" {
		t.Errorf("Remote = %q, expected origin", cfg.Remote)
	}
	if len(cfg.ExpectedFiles) != 3 {
		t.Errorf("ExpectedFiles = %v, expected 3 entries", cfg.ExpectedFiles)
	}
	if cfg.RedirectTarget != "metrograph_afa.ics" {
		t.Errorf("RedirectTarget = %q, expected metrograph_afa.ics", cfg.RedirectTarget)
	}
	if cfg.PythonVersion != "3.11" {
		t.Errorf("PythonVersion = %q, expected 3.11", cfg.PythonVersion)
	}
	if cfg.Schedule.Hour != 11 || cfg.Schedule.Minute != 0 {
		t.Errorf("Schedule = %02d:%02d, expected 11:00", cfg.Schedule.Hour, cfg.Schedule.Minute)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PublishBranch != "gh-pages" {
		t.Errorf("PublishBranch = %q, expected default", cfg.PublishBranch)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.PublishBranch = "public"
	cfg.ExpectedFiles = []string{"metrograph_afa.ics"}
	cfg.Schedule.Hour = 7
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.PublishBranch != "public" {
		t.Errorf("PublishBranch = %q, expected public", loaded.PublishBranch)
	}
	if len(loaded.ExpectedFiles) != 1 {
		t.Errorf("ExpectedFiles = %v, expected 1 entry", loaded.ExpectedFiles)
	}
	if loaded.Schedule.Hour != 7 {
		t.Errorf("Schedule.Hour = %d, expected 7", loaded.Schedule.Hour)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, ".slatepub", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("publish_branch: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestLoadRejectsEmptyExpectedFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, ".slatepub", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("expected_files: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "expected_files") {
		t.Fatalf("err = %v, expected expected_files validation error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"no expected files", func(c *Config) { c.ExpectedFiles = nil }, false},
		{"no branch", func(c *Config) { c.PublishBranch = "" }, false},
		{"no remote", func(c *Config) { c.Remote = "" }, false},
		{"no redirect target", func(c *Config) { c.RedirectTarget = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate failed: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RepoDir = "/srv/slate"
	cfg.OutputDir = "output"
	if got := cfg.OutputPath(); got != filepath.Join("/srv/slate", "output") {
		t.Errorf("OutputPath = %q", got)
	}

	cfg.OutputDir = "/var/tmp/out"
	if got := cfg.OutputPath(); got != "/var/tmp/out" {
		t.Errorf("OutputPath = %q, expected absolute dir unchanged", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	if got := ExpandPath("~/slate"); got != filepath.Join(home, "slate") {
		t.Errorf("ExpandPath(~/slate) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}
