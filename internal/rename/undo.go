package rename

// UndoBatch reverses a previously applied batch: every entry that actually
// renamed a file is renamed back, in reverse apply order, with the
// executor's per-entry isolation. Entries that renamed nothing are skipped.
// The reversal is recorded in the journal as a batch of its own.
func (s *RenameService) UndoBatch(batch *BatchRecord, entries []*EntryRecord) *BatchReport {
	reversals := make([]PathMapping, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		rec := entries[i]
		if rec.Outcome != Success.String() || rec.SourcePath == rec.TargetPath {
			continue
		}
		reversals = append(reversals, PathMapping{
			OriginalPath: rec.TargetPath,
			MappedPath:   rec.SourcePath,
			Provenance:   Manual,
		})
	}

	if len(reversals) == 0 {
		s.logger.Info("nothing to undo", "batch", batch.ID)
		return &BatchReport{}
	}

	undoID := s.idgen.New()
	started := s.clock.Now()
	results := s.executor.ApplyAll(reversals)
	finished := s.clock.Now()

	succeeded, failedNames := summarize(results)
	s.journalBatch(undoID, started, finished, reversals, results)
	s.logger.Info("rename batch reverted", "batch", batch.ID, "undo_batch", undoID, "succeeded", len(succeeded), "failed", len(failedNames))

	return &BatchReport{
		BatchID:     undoID,
		Results:     results,
		Succeeded:   len(succeeded),
		FailedNames: failedNames,
	}
}
