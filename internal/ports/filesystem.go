// Package ports defines interfaces (contracts) for external dependencies.
// These enable dependency injection and testability via mock implementations.
package ports

import "os"

// FileSystem abstracts filesystem operations for testability.
// Production code uses the osfs adapter; tests use mocks.MockFileSystem.
type FileSystem interface {
	// ReadDir reads the named directory and returns directory entries.
	ReadDir(name string) ([]os.DirEntry, error)

	// Stat returns file info for the named file.
	Stat(name string) (os.FileInfo, error)

	// MkdirAll creates a directory along with any necessary parents.
	MkdirAll(path string, perm os.FileMode) error

	// MkdirTemp creates a new unique temporary directory and returns its path.
	MkdirTemp(dir, pattern string) (string, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(name string, data []byte, perm os.FileMode) error

	// ReadFile reads the named file and returns the contents.
	ReadFile(name string) ([]byte, error)

	// RemoveAll removes path and any children it contains.
	RemoveAll(path string) error

	// CopyTree copies every regular file under src into dst, preserving
	// relative paths. dst must already exist.
	CopyTree(src, dst string) (int, error)
}
