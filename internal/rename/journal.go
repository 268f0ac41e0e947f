package rename

import "time"

// BatchRecord describes one applied rename batch.
type BatchRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  int
	Failed     int
}

// EntryRecord describes a single rename inside a batch.
type EntryRecord struct {
	BatchID    string
	SourcePath string
	TargetPath string
	Provenance string
	Outcome    string
	Error      string
}

// Journal persists applied batches so they can be listed and undone.
type Journal interface {
	// RecordBatch stores a batch and its entries atomically.
	// Entry order is apply order and must be preserved.
	RecordBatch(batch *BatchRecord, entries []*EntryRecord) error

	// ListBatches returns the most recent batches, newest first.
	ListBatches(limit int) ([]*BatchRecord, error)

	// FindBatch returns the batch with the given ID, or nil when absent.
	FindBatch(id string) (*BatchRecord, error)

	// LatestBatch returns the most recent batch, or nil when the journal is
	// empty.
	LatestBatch() (*BatchRecord, error)

	// EntriesForBatch returns a batch's entries in apply order.
	EntriesForBatch(batchID string) ([]*EntryRecord, error)

	// Close closes the underlying store.
	Close() error
}
