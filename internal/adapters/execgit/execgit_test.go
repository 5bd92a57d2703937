package execgit

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/mcdonaldj/slatepub/internal/ports"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v: %s", args, err, out)
	}
}

// newTestRepo creates a working repo with one commit on main and a bare remote.
func newTestRepo(t *testing.T) (workDir, remoteDir string) {
	t.Helper()
	requireGit(t)

	base := t.TempDir()
	workDir = filepath.Join(base, "work")
	remoteDir = filepath.Join(base, "remote.git")

	runGit(t, base, "init", "--bare", "-b", "main", remoteDir)
	runGit(t, base, "init", "-b", "main", workDir)
	runGit(t, workDir, "config", "user.name", "test")
	runGit(t, workDir, "config", "user.email", "test@example.com")
	runGit(t, workDir, "remote", "add", "origin", remoteDir)

	if err := os.WriteFile(filepath.Join(workDir, "README.md"), []byte("hi\n"), 0644); err != nil {
		t.Fatal(err)
	}
	runGit(t, workDir, "add", "-A")
	runGit(t, workDir, "commit", "-m", "initial")
	runGit(t, workDir, "push", "origin", "main")

	return workDir, remoteDir
}

func TestNew(t *testing.T) {
	t.Run("default git path", func(t *testing.T) {
		client := New()
		if client.gitPath != "git" {
			t.Errorf("expected default git path 'git', got %q", client.gitPath)
		}
	})

	t.Run("custom git path", func(t *testing.T) {
		client := New(WithGitPath("/usr/local/bin/git"))
		if client.gitPath != "/usr/local/bin/git" {
			t.Errorf("expected custom path, got %q", client.gitPath)
		}
	})
}

func TestIsRepo(t *testing.T) {
	workDir, _ := newTestRepo(t)

	client := New()
	if !client.IsRepo(workDir) {
		t.Error("expected true for git repo")
	}
	if client.IsRepo(t.TempDir()) {
		t.Error("expected false for plain directory")
	}
}

func TestFetchMissingBranch(t *testing.T) {
	workDir, _ := newTestRepo(t)

	client := New()
	err := client.Fetch(workDir, "origin", "gh-pages")
	if !errors.Is(err, ports.ErrRemoteBranchNotFound) {
		t.Fatalf("err = %v, expected ErrRemoteBranchNotFound", err)
	}
}

func TestFetchExistingBranch(t *testing.T) {
	workDir, _ := newTestRepo(t)

	client := New()
	if err := client.Fetch(workDir, "origin", "main"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
}

func TestOrphanPublishFlow(t *testing.T) {
	workDir, remoteDir := newTestRepo(t)
	client := New()

	if err := client.CheckoutOrphan(workDir, "gh-pages"); err != nil {
		t.Fatalf("CheckoutOrphan failed: %v", err)
	}
	// Tolerated by the publisher; verify the error shape is stable here.
	_ = client.Checkout(workDir, "origin", "gh-pages")

	if err := client.RemoveTracked(workDir); err != nil {
		t.Fatalf("RemoveTracked failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(workDir, "metrograph_afa.ics"), []byte("BEGIN:VCALENDAR\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := client.SetIdentity(workDir, "slatepub bot", "slatepub@users.noreply.github.com"); err != nil {
		t.Fatalf("SetIdentity failed: %v", err)
	}
	if err := client.Add(workDir); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	hash, err := client.Commit(workDir, "Update calendars 2026-08-30 11:00:00 UTC")
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if len(hash) < 7 {
		t.Errorf("hash = %q, expected commit hash", hash)
	}
	if err := client.Push(workDir, "origin", "gh-pages"); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	// The orphan branch has no shared history with main.
	cmd := exec.Command("git", "rev-list", "--count", "gh-pages")
	cmd.Dir = remoteDir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("rev-list failed: %v", err)
	}
	if string(out) != "1\n" {
		t.Errorf("gh-pages history = %s, expected exactly 1 commit", out)
	}
}

func TestCommitNothingToCommit(t *testing.T) {
	workDir, _ := newTestRepo(t)
	client := New()

	if err := client.Add(workDir); err != nil {
		t.Fatal(err)
	}
	_, err := client.Commit(workDir, "empty")
	if !errors.Is(err, ports.ErrNothingToCommit) {
		t.Fatalf("err = %v, expected ErrNothingToCommit", err)
	}
}

func TestHead(t *testing.T) {
	workDir, _ := newTestRepo(t)

	hash, err := New().Head(workDir)
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if len(hash) != 40 {
		t.Errorf("hash = %q, expected full sha", hash)
	}
}

func TestCheckoutTracksRemoteBranch(t *testing.T) {
	workDir, remoteDir := newTestRepo(t)
	client := New()

	// Publish a gh-pages branch from a second clone.
	other := filepath.Join(t.TempDir(), "other")
	runGit(t, filepath.Dir(other), "clone", remoteDir, other)
	runGit(t, other, "config", "user.name", "test")
	runGit(t, other, "config", "user.email", "test@example.com")
	runGit(t, other, "checkout", "--orphan", "gh-pages")
	runGit(t, other, "rm", "-rf", ".")
	if err := os.WriteFile(filepath.Join(other, "index.html"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	runGit(t, other, "add", "-A")
	runGit(t, other, "commit", "-m", "publish")
	runGit(t, other, "push", "origin", "gh-pages")

	if err := client.Fetch(workDir, "origin", "gh-pages"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if err := client.Checkout(workDir, "origin", "gh-pages"); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(workDir, "index.html")); err != nil {
		t.Errorf("work tree missing published file: %v", err)
	}
}
