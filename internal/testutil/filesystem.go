package testutil

import (
	"fmt"
	"path/filepath"
	"time"

	"photorename/internal/rename"
)

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Ctime time.Time
	Mtime time.Time
}

// MockFilesystemManager is an in-memory filesystem for testing the rename
// pipeline without touching the disk. Renames move entries around the map;
// the error maps let tests inject per-path failures.
type MockFilesystemManager struct {
	files map[string]*MockFile

	// RenameErr makes Rename fail for the given source path.
	RenameErr map[string]error
	// TimesErr makes Times fail for the given path.
	TimesErr map[string]error

	// Renames records every successful rename in order.
	Renames [][2]string
}

// NewMockFilesystemManager creates an empty mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files:     make(map[string]*MockFile),
		RenameErr: make(map[string]error),
		TimesErr:  make(map[string]error),
	}
}

// AddFile adds a file whose ctime and mtime are both the current time.
func (m *MockFilesystemManager) AddFile(path string) {
	now := time.Now()
	m.AddFileTimes(path, now, now)
}

// AddFileTimes adds a file with explicit timestamps.
func (m *MockFilesystemManager) AddFileTimes(path string, ctime, mtime time.Time) {
	m.files[path] = &MockFile{Ctime: ctime, Mtime: mtime}
}

func (m *MockFilesystemManager) Resolve(rawPath string) (string, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", err
	}
	if _, ok := m.files[absPath]; !ok {
		return "", fmt.Errorf("file not found: %s", absPath)
	}
	return absPath, nil
}

func (m *MockFilesystemManager) Times(path string) (rename.FileTimes, error) {
	if err := m.TimesErr[path]; err != nil {
		return rename.FileTimes{}, err
	}
	file, ok := m.files[path]
	if !ok {
		return rename.FileTimes{}, fmt.Errorf("file not found: %s", path)
	}
	return rename.FileTimes{Ctime: file.Ctime, Mtime: file.Mtime}, nil
}

func (m *MockFilesystemManager) Exists(path string) bool {
	_, ok := m.files[path]
	return ok
}

func (m *MockFilesystemManager) Rename(oldPath, newPath string) error {
	if err := m.RenameErr[oldPath]; err != nil {
		return err
	}
	file, ok := m.files[oldPath]
	if !ok {
		return fmt.Errorf("file not found: %s", oldPath)
	}
	if _, ok := m.files[newPath]; ok {
		return fmt.Errorf("destination already exists: %s", newPath)
	}

	delete(m.files, oldPath)
	m.files[newPath] = file
	m.Renames = append(m.Renames, [2]string{oldPath, newPath})
	return nil
}

// Compile-time check
var _ rename.FilesystemManager = (*MockFilesystemManager)(nil)
