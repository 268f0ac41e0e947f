package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"photorename/internal/rename"
)

// OSFilesystemManager is the real filesystem implementation of
// rename.FilesystemManager. It performs actual filesystem operations using
// the os package.
type OSFilesystemManager struct{}

// NewOSFilesystemManager creates a manager that operates on the real
// filesystem.
func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// Resolve validates a raw path and returns its absolute form. Only regular
// files are accepted; the rename pipeline never follows directories or
// special files.
func (m *OSFilesystemManager) Resolve(rawPath string) (string, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("stat path: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory: %s", absPath)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("not a regular file: %s", absPath)
	}

	return absPath, nil
}

// Times returns the change and modification timestamps for path.
func (m *OSFilesystemManager) Times(path string) (rename.FileTimes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return rename.FileTimes{}, fmt.Errorf("stat path: %w", err)
	}
	return extractTimes(info)
}

// Exists reports whether anything is present at path. Lstat is used so a
// dangling symlink still counts as occupying the name.
func (m *OSFilesystemManager) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Rename atomically renames oldPath to newPath.
func (m *OSFilesystemManager) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("renaming file: %w", err)
	}
	return nil
}

// Compile-time check that OSFilesystemManager implements rename.FilesystemManager
var _ rename.FilesystemManager = (*OSFilesystemManager)(nil)
