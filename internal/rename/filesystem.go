package rename

import "time"

// FileTimes holds the filesystem timestamps for one file.
type FileTimes struct {
	Ctime time.Time
	Mtime time.Time
}

// FilesystemManager provides an interface for the filesystem operations the
// rename pipeline needs. It abstracts file access to enable testing without
// touching the real filesystem.
type FilesystemManager interface {
	// Resolve validates a raw path and returns its absolute form.
	// It fails when the path does not exist or is not a regular file.
	Resolve(rawPath string) (string, error)

	// Times returns the change and modification timestamps for a path.
	Times(path string) (FileTimes, error)

	// Exists reports whether anything is present at path.
	Exists(path string) bool

	// Rename atomically renames oldPath to newPath.
	Rename(oldPath, newPath string) error
}
