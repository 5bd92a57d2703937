package ports

import "errors"

// Sentinel errors for tolerated git outcomes. The publisher checks these
// with errors.Is instead of blanket-ignoring failures, so each tolerated
// condition stays a named, testable outcome.
var (
	// ErrRemoteBranchNotFound is returned by Fetch when the remote has no
	// ref for the requested branch.
	ErrRemoteBranchNotFound = errors.New("remote branch not found")

	// ErrNothingToCommit is returned by Commit when the tree is unchanged.
	ErrNothingToCommit = errors.New("nothing to commit")
)

// GitClient abstracts the git operations the publisher needs.
// Production code uses the execgit adapter; tests use mocks.MockGitClient.
type GitClient interface {
	// IsRepo checks if the given path is a git repository.
	IsRepo(path string) bool

	// Head returns the current HEAD commit hash, or an error if there is
	// no commit yet.
	Head(repoDir string) (string, error)

	// Fetch fetches the named branch from the remote. Returns
	// ErrRemoteBranchNotFound if the remote has no such ref.
	Fetch(repoDir, remote, branch string) error

	// Checkout switches the work tree to the named branch, creating a
	// local tracking branch from remote/branch if needed.
	Checkout(repoDir, remote, branch string) error

	// CheckoutOrphan creates and switches to a branch with no ancestry.
	CheckoutOrphan(repoDir, branch string) error

	// RemoveTracked removes all tracked files from the index and work
	// tree. The .git directory is untouched.
	RemoveTracked(repoDir string) error

	// SetIdentity sets the commit author identity for the repository.
	SetIdentity(repoDir, name, email string) error

	// Add stages all changes in the work tree.
	Add(repoDir string) error

	// Commit records staged changes with the given message and returns
	// the new commit hash. Returns ErrNothingToCommit when the tree is
	// identical to HEAD.
	Commit(repoDir, message string) (string, error)

	// Push pushes the named branch to the remote.
	Push(repoDir, remote, branch string) error
}
