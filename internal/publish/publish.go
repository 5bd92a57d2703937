// Package publish replaces the publishing branch's content with the
// latest scraper output and pushes it.
//
// The publishing branch is a persistent ref serving the static site. It
// never shares history with the source branch (orphan bootstrap on first
// run) and always contains exactly one run's calendar files plus the
// redirect entry page. Callers get a single ReplaceAndCommit operation;
// branch-switch mechanics stay inside this package.
package publish

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mcdonaldj/slatepub/internal/ports"
)

// RedirectFile is the name of the generated entry page.
const RedirectFile = "index.html"

// Options configures a Publisher.
type Options struct {
	RepoDir        string
	Remote         string
	Branch         string
	RedirectTarget string
	BotName        string
	BotEmail       string
}

// CommitResult describes the outcome of one publish.
type CommitResult struct {
	Branch          string
	Hash            string
	Files           int  // calendar files published, excluding the redirect page
	BranchCreated   bool // publishing branch bootstrapped as an orphan this run
	NothingToCommit bool
}

// Publisher makes the latest output directory the sole tracked content of
// the publishing branch.
type Publisher struct {
	Git ports.GitClient
	FS  ports.FileSystem
	Opt Options

	// now is injectable for deterministic commit messages in tests.
	now func() time.Time
}

// New creates a Publisher.
func New(git ports.GitClient, fs ports.FileSystem, opt Options) *Publisher {
	return &Publisher{Git: git, FS: fs, Opt: opt, now: time.Now}
}

// ReplaceAndCommit publishes outputDir to the publishing branch.
//
// The sequence tolerates, as named outcomes, exactly the conditions that
// occur on a first run or a re-run after partial failure: missing remote
// branch, checkout after orphan creation, removal on an empty tree, and
// an unchanged tree at commit time. A push failure always surfaces — an
// unpushed commit means the public artifacts were not updated.
func (p *Publisher) ReplaceAndCommit(outputDir string) (CommitResult, error) {
	result := CommitResult{Branch: p.Opt.Branch}

	// Stage the output outside the work tree so the branch switch cannot
	// clobber it.
	staging, err := p.FS.MkdirTemp("", "slatepub-publish-*")
	if err != nil {
		return result, fmt.Errorf("creating staging dir: %w", err)
	}
	defer p.FS.RemoveAll(staging)

	if _, err := p.FS.CopyTree(outputDir, staging); err != nil {
		return result, fmt.Errorf("staging output: %w", err)
	}
	if err := p.FS.RemoveAll(outputDir); err != nil {
		return result, fmt.Errorf("clearing output dir: %w", err)
	}

	if err := p.checkoutBranch(&result); err != nil {
		return result, err
	}

	// Tolerated: first-ever run has nothing tracked to remove.
	_ = p.Git.RemoveTracked(p.Opt.RepoDir)

	files, err := p.FS.CopyTree(staging, p.Opt.RepoDir)
	if err != nil {
		return result, fmt.Errorf("restoring output into work tree: %w", err)
	}
	result.Files = files

	page := RedirectPage(p.Opt.RedirectTarget)
	if err := p.FS.WriteFile(filepath.Join(p.Opt.RepoDir, RedirectFile), []byte(page), 0644); err != nil {
		return result, fmt.Errorf("writing redirect page: %w", err)
	}

	if err := p.Git.SetIdentity(p.Opt.RepoDir, p.Opt.BotName, p.Opt.BotEmail); err != nil {
		return result, fmt.Errorf("setting bot identity: %w", err)
	}
	if err := p.Git.Add(p.Opt.RepoDir); err != nil {
		return result, fmt.Errorf("staging changes: %w", err)
	}

	hash, err := p.Git.Commit(p.Opt.RepoDir, p.commitMessage())
	switch {
	case errors.Is(err, ports.ErrNothingToCommit):
		result.NothingToCommit = true
	case err != nil:
		return result, fmt.Errorf("committing: %w", err)
	default:
		result.Hash = hash
	}

	if err := p.Git.Push(p.Opt.RepoDir, p.Opt.Remote, p.Opt.Branch); err != nil {
		return result, fmt.Errorf("pushing %s: %w", p.Opt.Branch, err)
	}

	return result, nil
}

// checkoutBranch switches the work tree to the publishing branch,
// bootstrapping it as an orphan when it exists nowhere yet.
func (p *Publisher) checkoutBranch(result *CommitResult) error {
	err := p.Git.Fetch(p.Opt.RepoDir, p.Opt.Remote, p.Opt.Branch)
	if err == nil {
		if err := p.Git.Checkout(p.Opt.RepoDir, p.Opt.Remote, p.Opt.Branch); err != nil {
			return fmt.Errorf("checking out %s: %w", p.Opt.Branch, err)
		}
		return nil
	}
	if !errors.Is(err, ports.ErrRemoteBranchNotFound) {
		return fmt.Errorf("fetching %s: %w", p.Opt.Branch, err)
	}

	if err := p.Git.CheckoutOrphan(p.Opt.RepoDir, p.Opt.Branch); err != nil {
		return fmt.Errorf("creating orphan %s: %w", p.Opt.Branch, err)
	}
	result.BranchCreated = true

	// Tolerated: usually already on the branch after orphan creation.
	_ = p.Git.Checkout(p.Opt.RepoDir, p.Opt.Remote, p.Opt.Branch)
	return nil
}

func (p *Publisher) commitMessage() string {
	return "Update calendars " + p.now().UTC().Format("2006-01-02 15:04:05") + " UTC"
}

// RedirectPage returns the entry page content: a single-line client-side
// redirect to the target calendar. Pure function of the target name, so
// the page is byte-identical on every run.
func RedirectPage(target string) string {
	return fmt.Sprintf("<meta http-equiv=\"refresh\" content=\"0; url=%s\">\n", target)
}
