package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over the file operations the
// file-backed key-value store needs, so it can run against memory in tests
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Rename(oldPath, newPath string) error
	Remove(path string) error

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Exists(path string) bool
}
