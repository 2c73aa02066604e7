package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakoblorz/go-panelcart/internal/filesystem"
)

const fileExt = ".json"

var _ Backend = (*File)(nil)

// File stores each key as <dir>/<key>.json through a FileSystem
type File struct {
	fs  filesystem.FileSystem
	dir string
}

// NewFile creates a File backend rooted at dir. The directory is created
// lazily on first write.
func NewFile(fs filesystem.FileSystem, dir string) *File {
	return &File{fs: fs, dir: filepath.Clean(dir)}
}

// Dir returns the directory the backend writes into
func (f *File) Dir() string {
	return f.dir
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+fileExt)
}

func (f *File) Get(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}

	data, err := f.fs.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), nil
}

// Set writes to a temporary file and renames it over the target so a
// crash never leaves a half-written value behind.
func (f *File) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if !f.fs.Exists(f.dir) {
		if err := f.fs.MkdirAll(f.dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	target := f.path(key)
	tmp := target + ".tmp"
	if err := f.fs.WriteFile(tmp, []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := f.fs.Rename(tmp, target); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

func (f *File) Remove(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if err := f.fs.Remove(f.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (f *File) Keys() ([]string, error) {
	if !f.fs.Exists(f.dir) {
		return []string{}, nil
	}

	entries, err := f.fs.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	keys := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// Only process .json files
		name := entry.Name()
		if !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}

	sort.Strings(keys)
	return keys, nil
}
