// Package execgit provides a git client adapter using exec.Command.
package execgit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mcdonaldj/slatepub/internal/ports"
)

// ExecGitClient implements ports.GitClient using exec.Command.
type ExecGitClient struct {
	// gitPath is the path to the git binary. Defaults to "git".
	gitPath string
}

// Option is a functional option for configuring ExecGitClient.
type Option func(*ExecGitClient)

// WithGitPath sets a custom path to the git binary.
func WithGitPath(path string) Option {
	return func(c *ExecGitClient) {
		c.gitPath = path
	}
}

// New creates a new ExecGitClient adapter.
func New(opts ...Option) *ExecGitClient {
	c := &ExecGitClient{gitPath: "git"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (g *ExecGitClient) run(repoDir string, args ...string) (string, error) {
	cmd := exec.Command(g.gitPath, args...)
	cmd.Dir = repoDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// IsRepo checks if the given path is a git repository.
func (g *ExecGitClient) IsRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Head returns the current HEAD commit hash.
func (g *ExecGitClient) Head(repoDir string) (string, error) {
	cmd := exec.Command(g.gitPath, "rev-parse", "HEAD")
	cmd.Dir = repoDir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Fetch fetches the named branch from the remote. A fetch that fails
// because the remote has no such ref is reported as
// ports.ErrRemoteBranchNotFound so the caller can bootstrap an orphan
// branch instead.
func (g *ExecGitClient) Fetch(repoDir, remote, branch string) error {
	out, err := g.run(repoDir, "fetch", remote, branch)
	if err != nil {
		if strings.Contains(out, "couldn't find remote ref") ||
			strings.Contains(out, "Couldn't find remote ref") {
			return fmt.Errorf("%s/%s: %w", remote, branch, ports.ErrRemoteBranchNotFound)
		}
		return err
	}
	return nil
}

// Checkout switches to the named branch, creating a local tracking branch
// from remote/branch when no local branch exists yet.
func (g *ExecGitClient) Checkout(repoDir, remote, branch string) error {
	if _, err := g.run(repoDir, "checkout", branch); err == nil {
		return nil
	}
	_, err := g.run(repoDir, "checkout", "-b", branch, remote+"/"+branch)
	return err
}

// CheckoutOrphan creates and switches to a branch with no ancestry.
func (g *ExecGitClient) CheckoutOrphan(repoDir, branch string) error {
	_, err := g.run(repoDir, "checkout", "--orphan", branch)
	return err
}

// RemoveTracked removes all tracked files from the index and work tree.
func (g *ExecGitClient) RemoveTracked(repoDir string) error {
	_, err := g.run(repoDir, "rm", "-rf", ".")
	return err
}

// SetIdentity sets the commit author identity for the repository.
func (g *ExecGitClient) SetIdentity(repoDir, name, email string) error {
	if _, err := g.run(repoDir, "config", "user.name", name); err != nil {
		return err
	}
	_, err := g.run(repoDir, "config", "user.email", email)
	return err
}

// Add stages all changes in the work tree.
func (g *ExecGitClient) Add(repoDir string) error {
	_, err := g.run(repoDir, "add", "-A")
	return err
}

// Commit records staged changes and returns the new commit hash. A commit
// that fails because the tree is unchanged is reported as
// ports.ErrNothingToCommit.
func (g *ExecGitClient) Commit(repoDir, message string) (string, error) {
	out, err := g.run(repoDir, "commit", "-m", message)
	if err != nil {
		if strings.Contains(out, "nothing to commit") ||
			strings.Contains(out, "nothing added to commit") {
			return "", ports.ErrNothingToCommit
		}
		return "", err
	}
	return g.Head(repoDir)
}

// Push pushes the named branch to the remote.
func (g *ExecGitClient) Push(repoDir, remote, branch string) error {
	_, err := g.run(repoDir, "push", remote, branch)
	return err
}

// Compile-time check that ExecGitClient implements ports.GitClient.
var _ ports.GitClient = (*ExecGitClient)(nil)
