package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	RepoDir        string   `yaml:"repo_dir"`
	OutputDir      string   `yaml:"output_dir"`
	ExpectedFiles  []string `yaml:"expected_files"`
	RedirectTarget string   `yaml:"redirect_target"`
	PublishBranch  string   `yaml:"publish_branch"`
	Remote         string   `yaml:"remote"`
	BotName        string   `yaml:"bot_name"`
	BotEmail       string   `yaml:"bot_email"`
	ScraperCommand []string `yaml:"scraper_command"`
	PythonVersion  string   `yaml:"python_version"`
	Schedule       struct {
		Hour   int `yaml:"hour"`
		Minute int `yaml:"minute"`
	} `yaml:"schedule"`
	Retention struct {
		KeepLast int `yaml:"keep_last"`
	} `yaml:"retention"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		RepoDir:        ".",
		OutputDir:      "output",
		ExpectedFiles:  []string{"metrograph.ics", "afa.ics", "metrograph_afa.ics"},
		RedirectTarget: "metrograph_afa.ics",
		PublishBranch:  "gh-pages",
		Remote:         "origin",
		BotName:        "slatepub bot",
		BotEmail:       "slatepub@users.noreply.github.com",
		ScraperCommand: []string{"python3", "scraper.py"},
		PythonVersion:  "3.11",
	}
	cfg.Schedule.Hour = 11
	cfg.Schedule.Minute = 0
	cfg.Retention.KeepLast = 60
	return cfg
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".slatepub", "config.yaml")
}

// StateDir is where the run log and lock file live.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".slatepub")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations that cannot publish anything.
func (c *Config) Validate() error {
	if len(c.ExpectedFiles) == 0 {
		return fmt.Errorf("expected_files must not be empty")
	}
	if c.PublishBranch == "" {
		return fmt.Errorf("publish_branch must not be empty")
	}
	if c.Remote == "" {
		return fmt.Errorf("remote must not be empty")
	}
	if c.RedirectTarget == "" {
		return fmt.Errorf("redirect_target must not be empty")
	}
	return nil
}

// OutputPath returns the output directory resolved against the repo dir.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.OutputDir) {
		return c.OutputDir
	}
	return filepath.Join(ExpandPath(c.RepoDir), c.OutputDir)
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unexpanded if home unavailable
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
