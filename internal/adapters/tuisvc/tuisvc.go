// Package tuisvc provides the real implementation of ports.TUIService.
package tuisvc

import (
	"os"
	"path/filepath"

	"github.com/mcdonaldj/slatepub/internal/adapters/execgit"
	"github.com/mcdonaldj/slatepub/internal/adapters/execscraper"
	"github.com/mcdonaldj/slatepub/internal/adapters/osfs"
	"github.com/mcdonaldj/slatepub/internal/config"
	"github.com/mcdonaldj/slatepub/internal/pipeline"
	"github.com/mcdonaldj/slatepub/internal/ports"
	"github.com/mcdonaldj/slatepub/internal/runlog"
)

// Service implements ports.TUIService using the real adapters.
type Service struct{}

// New creates a new TUI service.
func New() *Service {
	return &Service{}
}

// LoadConfig loads the application configuration.
func (s *Service) LoadConfig() (*config.Config, error) {
	return config.Load()
}

// ListRuns returns recorded pipeline runs, newest first.
func (s *Service) ListRuns(cfg *config.Config) ([]ports.TUIRunInfo, error) {
	l, err := runlog.Load(config.StateDir())
	if err != nil {
		return nil, err
	}

	runs := make([]ports.TUIRunInfo, 0, len(l.Runs))
	for i := len(l.Runs) - 1; i >= 0; i-- {
		r := l.Runs[i]
		runs = append(runs, ports.TUIRunInfo{
			StartedAt: r.StartedAt,
			Files:     r.Files,
			Commit:    r.Commit,
			Branch:    r.Branch,
			NoOp:      r.NoOp,
		})
	}
	return runs, nil
}

// ListArtifacts reports presence of each expected file in the output dir.
func (s *Service) ListArtifacts(cfg *config.Config) ([]ports.TUIArtifactInfo, error) {
	outputDir := cfg.OutputPath()

	artifacts := make([]ports.TUIArtifactInfo, 0, len(cfg.ExpectedFiles))
	for _, name := range cfg.ExpectedFiles {
		item := ports.TUIArtifactInfo{Name: name}
		if info, err := os.Stat(filepath.Join(outputDir, name)); err == nil && !info.IsDir() {
			item.Present = true
			item.SizeBytes = info.Size()
		}
		artifacts = append(artifacts, item)
	}
	return artifacts, nil
}

// RunPipeline executes the full scrape/validate/publish pipeline.
func (s *Service) RunPipeline(cfg *config.Config) ports.TUIRunOutcome {
	result := pipeline.Run(cfg, pipeline.Deps{
		Git:     execgit.New(),
		FS:      osfs.New(),
		Scraper: execscraper.New(cfg.ScraperCommand, execscraper.WithPythonVersion(cfg.PythonVersion)),
	})

	return ports.TUIRunOutcome{
		Files:  result.Publish.Files,
		Commit: result.Publish.Hash,
		NoOp:   result.Publish.NothingToCommit,
		Error:  result.Err,
	}
}

// Compile-time check that Service implements ports.TUIService.
var _ ports.TUIService = (*Service)(nil)
