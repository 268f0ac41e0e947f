package testutil

import (
	"testing"

	"photorename/internal/database"
	"photorename/internal/rename"
)

// NewTestJournal creates a new in-memory SQLite journal with migrations
// applied. The journal is automatically closed when the test completes.
func NewTestJournal(t *testing.T) rename.Journal {
	t.Helper()

	journal, err := database.NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}

	t.Cleanup(func() {
		journal.Close()
	})

	return journal
}
