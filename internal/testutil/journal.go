package testutil

import (
	"photorename/internal/rename"
)

// MemoryJournal is an in-memory Journal for tests that do not need a real
// database. Batches are kept in insertion order; RecordErr makes RecordBatch
// fail when set.
type MemoryJournal struct {
	Batches   []*rename.BatchRecord
	Entries   map[string][]*rename.EntryRecord
	RecordErr error
}

// NewMemoryJournal creates an empty MemoryJournal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{Entries: make(map[string][]*rename.EntryRecord)}
}

func (j *MemoryJournal) RecordBatch(batch *rename.BatchRecord, entries []*rename.EntryRecord) error {
	if j.RecordErr != nil {
		return j.RecordErr
	}
	j.Batches = append(j.Batches, batch)
	j.Entries[batch.ID] = append([]*rename.EntryRecord(nil), entries...)
	return nil
}

func (j *MemoryJournal) ListBatches(limit int) ([]*rename.BatchRecord, error) {
	batches := make([]*rename.BatchRecord, 0, len(j.Batches))
	for i := len(j.Batches) - 1; i >= 0; i-- {
		if limit > 0 && len(batches) == limit {
			break
		}
		batches = append(batches, j.Batches[i])
	}
	return batches, nil
}

func (j *MemoryJournal) FindBatch(id string) (*rename.BatchRecord, error) {
	for _, batch := range j.Batches {
		if batch.ID == id {
			return batch, nil
		}
	}
	return nil, nil
}

func (j *MemoryJournal) LatestBatch() (*rename.BatchRecord, error) {
	if len(j.Batches) == 0 {
		return nil, nil
	}
	return j.Batches[len(j.Batches)-1], nil
}

func (j *MemoryJournal) EntriesForBatch(batchID string) ([]*rename.EntryRecord, error) {
	return append([]*rename.EntryRecord(nil), j.Entries[batchID]...), nil
}

func (j *MemoryJournal) Close() error {
	return nil
}

// Compile-time check
var _ rename.Journal = (*MemoryJournal)(nil)
