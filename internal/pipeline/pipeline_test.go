package pipeline

import (
	"errors"
	"testing"

	"github.com/mcdonaldj/slatepub/internal/config"
	"github.com/mcdonaldj/slatepub/internal/mocks"
	"github.com/mcdonaldj/slatepub/internal/ports"
	"github.com/mcdonaldj/slatepub/internal/runlog"
	"github.com/mcdonaldj/slatepub/internal/validate"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.RepoDir = "/repo"
	return cfg
}

func testDeps(t *testing.T) (Deps, *mocks.MockGitClient, *mocks.MockFileSystem, *mocks.MockScraper) {
	t.Helper()
	git := mocks.NewMockGitClient()
	fs := mocks.NewMockFileSystem()
	fs.Dirs["/repo/output"] = true
	scraper := mocks.NewMockScraper(fs)
	deps := Deps{
		Git:      git,
		FS:       fs,
		Scraper:  scraper,
		StateDir: t.TempDir(),
	}
	return deps, git, fs, scraper
}

func TestRunPublishesScrapedFiles(t *testing.T) {
	deps, git, _, scraper := testDeps(t)
	scraper.Produce["metrograph.ics"] = []byte("BEGIN:VCALENDAR")
	scraper.Produce["metrograph_afa.ics"] = []byte("BEGIN:VCALENDAR")

	result := Run(testConfig(), deps)
	if result.Err != nil {
		t.Fatalf("Run failed at %s: %v", result.Stage, result.Err)
	}

	if scraper.Runs != 1 {
		t.Errorf("scraper runs = %d, expected 1", scraper.Runs)
	}
	if len(result.Validated.Present) != 2 {
		t.Errorf("Present = %v, expected 2 files", result.Validated.Present)
	}
	if result.Publish.Files != 2 {
		t.Errorf("published files = %d, expected 2", result.Publish.Files)
	}
	if got := git.Calls[len(git.Calls)-1]; got != "push origin gh-pages" {
		t.Errorf("last git call = %q, expected push", got)
	}
}

func TestRunEmptyOutputHaltsBeforeGit(t *testing.T) {
	deps, git, _, _ := testDeps(t)
	// Scraper produces nothing.

	result := Run(testConfig(), deps)
	if result.Err == nil {
		t.Fatal("expected validation failure")
	}
	if result.Stage != "validate" {
		t.Errorf("Stage = %q, expected validate", result.Stage)
	}
	if !errors.Is(result.Err, validate.ErrNoArtifacts) {
		t.Errorf("Err = %v, expected ErrNoArtifacts", result.Err)
	}
	if len(git.Calls) != 0 {
		t.Errorf("git calls = %v, expected none before validation", git.Calls)
	}
}

func TestRunScraperFailureHalts(t *testing.T) {
	deps, git, _, scraper := testDeps(t)
	scraper.Err = errors.New("scraper runtime is 3.12.1, want 3.11.x")

	result := Run(testConfig(), deps)
	if result.Stage != "scrape" {
		t.Errorf("Stage = %q, expected scrape", result.Stage)
	}
	if len(git.Calls) != 0 {
		t.Errorf("git calls = %v, expected none after scrape failure", git.Calls)
	}
}

func TestRunSkipScrapePublishesExistingOutput(t *testing.T) {
	deps, _, fs, scraper := testDeps(t)
	deps.SkipScrape = true
	fs.Files["/repo/output/metrograph_afa.ics"] = []byte("BEGIN:VCALENDAR")

	result := Run(testConfig(), deps)
	if result.Err != nil {
		t.Fatalf("Run failed at %s: %v", result.Stage, result.Err)
	}
	if scraper.Runs != 0 {
		t.Errorf("scraper runs = %d, expected 0 with SkipScrape", scraper.Runs)
	}
}

func TestRunRecordsRunlogEntry(t *testing.T) {
	deps, _, _, scraper := testDeps(t)
	scraper.Produce["metrograph_afa.ics"] = []byte("BEGIN:VCALENDAR")

	result := Run(testConfig(), deps)
	if result.Err != nil {
		t.Fatalf("Run failed: %v", result.Err)
	}

	l, err := runlog.Load(deps.StateDir)
	if err != nil {
		t.Fatalf("loading run log: %v", err)
	}
	last := l.Latest()
	if last == nil {
		t.Fatal("no run recorded")
	}
	if last.Files != 1 || last.Branch != "gh-pages" {
		t.Errorf("entry = %+v, expected 1 file on gh-pages", last)
	}
	if last.Commit == "" {
		t.Error("entry has no commit hash")
	}
}

func TestRunPublishFailureRecordsNothing(t *testing.T) {
	deps, git, _, scraper := testDeps(t)
	scraper.Produce["metrograph_afa.ics"] = []byte("BEGIN:VCALENDAR")
	git.PushErr = errors.New("remote rejected")

	result := Run(testConfig(), deps)
	if result.Stage != "publish" {
		t.Errorf("Stage = %q, expected publish", result.Stage)
	}

	l, err := runlog.Load(deps.StateDir)
	if err != nil {
		t.Fatalf("loading run log: %v", err)
	}
	if len(l.Runs) != 0 {
		t.Errorf("runs = %d, expected none recorded after failed publish", len(l.Runs))
	}
}

func TestRunSecondIdenticalRunIsNoOp(t *testing.T) {
	deps, git, fs, scraper := testDeps(t)
	scraper.Produce["metrograph_afa.ics"] = []byte("BEGIN:VCALENDAR")

	first := Run(testConfig(), deps)
	if first.Err != nil {
		t.Fatalf("first run failed: %v", first.Err)
	}

	// Same content again: the commit reports an unchanged tree.
	fs.Dirs["/repo/output"] = true
	git.CommitErr = ports.ErrNothingToCommit
	second := Run(testConfig(), deps)
	if second.Err != nil {
		t.Fatalf("second identical run should succeed, got: %v", second.Err)
	}
	if !second.Publish.NothingToCommit {
		t.Error("second run should report NothingToCommit")
	}
}
