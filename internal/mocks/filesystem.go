// Package mocks provides mock implementations for testing.
package mocks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mcdonaldj/slatepub/internal/ports"
)

// MockFileSystem implements ports.FileSystem as an in-memory tree keyed
// by slash-joined paths.
type MockFileSystem struct {
	// Files maps paths to file contents.
	Files map[string][]byte
	// Dirs marks paths known to be directories.
	Dirs map[string]bool
	// Errors maps paths to errors (for simulating failures).
	Errors map[string]error

	// TempErr makes MkdirTemp fail.
	TempErr error

	tempSeq int
}

// NewMockFileSystem creates a new mock filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:  make(map[string][]byte),
		Dirs:   make(map[string]bool),
		Errors: make(map[string]error),
	}
}

func (m *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	seen := make(map[string]bool)
	var entries []os.DirEntry
	prefix := name + string(os.PathSeparator)
	for path := range m.Files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rest := strings.TrimPrefix(path, prefix)
		top := strings.SplitN(rest, string(os.PathSeparator), 2)[0]
		if seen[top] {
			continue
		}
		seen[top] = true
		entries = append(entries, &mockDirEntry{name: top, isDir: strings.Contains(rest, string(os.PathSeparator))})
	}
	if len(entries) == 0 && !m.Dirs[name] {
		return nil, os.ErrNotExist
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if data, ok := m.Files[name]; ok {
		return &mockFileInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	if m.Dirs[name] {
		return &mockFileInfo{name: filepath.Base(name), isDir: true}, nil
	}
	return nil, os.ErrNotExist
}

func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if err, ok := m.Errors[path]; ok {
		return err
	}
	m.Dirs[path] = true
	return nil
}

func (m *MockFileSystem) MkdirTemp(dir, pattern string) (string, error) {
	if m.TempErr != nil {
		return "", m.TempErr
	}
	m.tempSeq++
	path := filepath.Join("/tmp", fmt.Sprintf("%s%d", strings.TrimSuffix(pattern, "*"), m.tempSeq))
	m.Dirs[path] = true
	return path, nil
}

func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err, ok := m.Errors[name]; ok {
		return err
	}
	m.Files[name] = append([]byte(nil), data...)
	return nil
}

func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if err, ok := m.Errors[name]; ok {
		return nil, err
	}
	if data, ok := m.Files[name]; ok {
		return data, nil
	}
	return nil, os.ErrNotExist
}

func (m *MockFileSystem) RemoveAll(path string) error {
	if err, ok := m.Errors[path]; ok {
		return err
	}
	delete(m.Dirs, path)
	prefix := path + string(os.PathSeparator)
	for p := range m.Files {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(m.Files, p)
		}
	}
	return nil
}

func (m *MockFileSystem) CopyTree(src, dst string) (int, error) {
	if err, ok := m.Errors[src]; ok {
		return 0, err
	}
	count := 0
	prefix := src + string(os.PathSeparator)
	for p, data := range m.Files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rel := strings.TrimPrefix(p, prefix)
		m.Files[filepath.Join(dst, rel)] = append([]byte(nil), data...)
		count++
	}
	return count, nil
}

// mockFileInfo implements os.FileInfo.
type mockFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return 0644 }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

// mockDirEntry implements os.DirEntry.
type mockDirEntry struct {
	name  string
	isDir bool
}

func (m *mockDirEntry) Name() string               { return m.name }
func (m *mockDirEntry) IsDir() bool                { return m.isDir }
func (m *mockDirEntry) Type() os.FileMode          { return 0 }
func (m *mockDirEntry) Info() (os.FileInfo, error) { return &mockFileInfo{name: m.name, isDir: m.isDir}, nil }

// Compile-time check that MockFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*MockFileSystem)(nil)
