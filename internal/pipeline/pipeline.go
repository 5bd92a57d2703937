// Package pipeline runs the full scrape -> validate -> publish sequence.
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/mcdonaldj/slatepub/internal/config"
	"github.com/mcdonaldj/slatepub/internal/lock"
	"github.com/mcdonaldj/slatepub/internal/ports"
	"github.com/mcdonaldj/slatepub/internal/publish"
	"github.com/mcdonaldj/slatepub/internal/runlog"
	"github.com/mcdonaldj/slatepub/internal/validate"
)

// Deps are the injectable collaborators of one pipeline run.
type Deps struct {
	Git     ports.GitClient
	FS      ports.FileSystem
	Scraper ports.Scraper

	// StateDir holds the run log and lock file. Defaults to config.StateDir().
	StateDir string
	// ScraperOut receives the scraper's combined output. Defaults to io.Discard.
	ScraperOut io.Writer
	// SkipScrape publishes a pre-produced output directory as-is.
	SkipScrape bool
}

// RunResult carries per-stage outcomes for CLI/TUI rendering.
type RunResult struct {
	Scrape    ports.ScrapeResult
	Validated validate.Result
	Publish   publish.CommitResult

	// Err is the fatal error that stopped the run, if any.
	Err error
	// Stage names the stage that failed: "lock", "scrape", "validate" or
	// "publish". Empty on success.
	Stage string
}

// Run executes the pipeline. A validation failure halts the run before
// any git operation; the publishing branch's remote ref only ever moves
// on a fully successful publish.
func Run(cfg *config.Config, deps Deps) RunResult {
	var result RunResult

	stateDir := deps.StateDir
	if stateDir == "" {
		stateDir = config.StateDir()
	}
	out := deps.ScraperOut
	if out == nil {
		out = io.Discard
	}

	lk, err := lock.Acquire(filepath.Join(stateDir, "run.lock"))
	if err != nil {
		result.Err = err
		result.Stage = "lock"
		return result
	}
	defer lk.Release()

	repoDir := config.ExpandPath(cfg.RepoDir)
	outputDir := cfg.OutputPath()

	if !deps.SkipScrape {
		result.Scrape, err = deps.Scraper.Run(repoDir, outputDir, out)
		if err != nil {
			result.Err = err
			result.Stage = "scrape"
			return result
		}
	}

	result.Validated, err = validate.Check(deps.FS, outputDir, cfg.ExpectedFiles)
	if err != nil {
		result.Err = err
		result.Stage = "validate"
		return result
	}

	pub := publish.New(deps.Git, deps.FS, publish.Options{
		RepoDir:        repoDir,
		Remote:         cfg.Remote,
		Branch:         cfg.PublishBranch,
		RedirectTarget: cfg.RedirectTarget,
		BotName:        cfg.BotName,
		BotEmail:       cfg.BotEmail,
	})
	result.Publish, err = pub.ReplaceAndCommit(outputDir)
	if err != nil {
		result.Err = err
		result.Stage = "publish"
		return result
	}

	record(cfg, stateDir, &result)

	return result
}

// record appends the run to the log. Logging failures never fail a run
// that already pushed.
func record(cfg *config.Config, stateDir string, result *RunResult) {
	l, err := runlog.Load(stateDir)
	if err != nil {
		return
	}
	l.Add(runlog.Entry{
		StartedAt:     time.Now().UTC(),
		Files:         result.Publish.Files,
		Commit:        result.Publish.Hash,
		Branch:        result.Publish.Branch,
		NoOp:          result.Publish.NothingToCommit,
		ScrapeSeconds: result.Scrape.Seconds,
	})
	l.Prune(cfg.Retention.KeepLast)
	_ = l.Save(stateDir)
}
