package ports

import (
	"time"

	"github.com/mcdonaldj/slatepub/internal/config"
)

// TUIRunInfo contains run history metadata for display.
type TUIRunInfo struct {
	StartedAt time.Time
	Files     int
	Commit    string
	Branch    string
	NoOp      bool
}

// TUIArtifactInfo describes one expected calendar file in the output directory.
type TUIArtifactInfo struct {
	Name      string
	Present   bool
	SizeBytes int64
}

// TUIRunOutcome contains the result of a pipeline run triggered from the TUI.
type TUIRunOutcome struct {
	Files  int
	Commit string
	NoOp   bool
	Error  error
}

// TUIService provides operations needed by the TUI.
// This abstraction allows the TUI to be tested without real git/scraper runs.
type TUIService interface {
	// LoadConfig loads the application configuration.
	LoadConfig() (*config.Config, error)

	// ListRuns returns recorded pipeline runs, newest first.
	ListRuns(cfg *config.Config) ([]TUIRunInfo, error)

	// ListArtifacts reports presence of each expected file in the output dir.
	ListArtifacts(cfg *config.Config) ([]TUIArtifactInfo, error)

	// RunPipeline executes the full scrape/validate/publish pipeline.
	RunPipeline(cfg *config.Config) TUIRunOutcome
}
