package database

import (
	"fmt"
	"os"
	"path/filepath"

	"photorename/internal/rename"
)

// NewJournal creates the Journal for the given path. ":memory:" opens a
// private in-memory journal; any other path opens a SQLite file, creating
// parent directories as needed.
func NewJournal(path string) (rename.Journal, error) {
	switch path {
	case "":
		return nil, fmt.Errorf("journal path required")
	case ":memory:":
		return NewSQLiteJournal(path)
	default:
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
		return NewSQLiteJournal(path)
	}
}
