package mocks

import (
	"fmt"

	"github.com/mcdonaldj/slatepub/internal/ports"
)

// MockGitClient implements ports.GitClient for testing. Every call is
// appended to Calls so tests can assert on operation ordering.
type MockGitClient struct {
	Calls []string

	// Repos maps paths to whether they are git repos
	Repos map[string]bool
	// HeadHash is returned by Head and Commit.
	HeadHash string

	FetchErr       error
	CheckoutErr    error
	OrphanErr      error
	RemoveErr      error
	IdentityErr    error
	AddErr         error
	CommitErr      error
	PushErr        error
	HeadErr        error
	CommitMessages []string
}

// NewMockGitClient creates a new mock git client.
func NewMockGitClient() *MockGitClient {
	return &MockGitClient{
		Repos:    make(map[string]bool),
		HeadHash: "abc1234def5678",
	}
}

func (m *MockGitClient) record(format string, args ...any) {
	m.Calls = append(m.Calls, fmt.Sprintf(format, args...))
}

func (m *MockGitClient) IsRepo(path string) bool {
	return m.Repos[path]
}

func (m *MockGitClient) Head(repoDir string) (string, error) {
	if m.HeadErr != nil {
		return "", m.HeadErr
	}
	return m.HeadHash, nil
}

func (m *MockGitClient) Fetch(repoDir, remote, branch string) error {
	m.record("fetch %s %s", remote, branch)
	return m.FetchErr
}

func (m *MockGitClient) Checkout(repoDir, remote, branch string) error {
	m.record("checkout %s", branch)
	return m.CheckoutErr
}

func (m *MockGitClient) CheckoutOrphan(repoDir, branch string) error {
	m.record("checkout --orphan %s", branch)
	return m.OrphanErr
}

func (m *MockGitClient) RemoveTracked(repoDir string) error {
	m.record("rm -rf .")
	return m.RemoveErr
}

func (m *MockGitClient) SetIdentity(repoDir, name, email string) error {
	m.record("config identity %s <%s>", name, email)
	return m.IdentityErr
}

func (m *MockGitClient) Add(repoDir string) error {
	m.record("add -A")
	return m.AddErr
}

func (m *MockGitClient) Commit(repoDir, message string) (string, error) {
	m.record("commit")
	m.CommitMessages = append(m.CommitMessages, message)
	if m.CommitErr != nil {
		return "", m.CommitErr
	}
	return m.HeadHash, nil
}

func (m *MockGitClient) Push(repoDir, remote, branch string) error {
	m.record("push %s %s", remote, branch)
	return m.PushErr
}

// Compile-time check that MockGitClient implements ports.GitClient.
var _ ports.GitClient = (*MockGitClient)(nil)
