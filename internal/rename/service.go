package rename

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// RenameService is the orchestration layer that coordinates date resolution,
// name formatting, the mapping table, and the executor to perform the
// operations the presentation layers need.
type RenameService struct {
	fsmgr    FilesystemManager
	table    *MappingTable
	executor *Executor
	journal  Journal
	template NamingTemplate
	logger   Logger
	clock    Clock
	idgen    IDGenerator
}

// NewRenameService creates a service over the given dependencies. A nil
// journal disables history recording; nil logger, clock, and idgen fall back
// to the no-op and real implementations.
func NewRenameService(fsmgr FilesystemManager, resolver *Resolver, journal Journal, tpl NamingTemplate, logger Logger, clock Clock, idgen IDGenerator) *RenameService {
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if idgen == nil {
		idgen = UUIDGenerator{}
	}

	formatter := NewFormatter(fsmgr)
	executor := NewExecutor(fsmgr, logger)

	return &RenameService{
		fsmgr:    fsmgr,
		table:    NewMappingTable(resolver, formatter, executor),
		executor: executor,
		journal:  journal,
		template: tpl,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// Subscribe registers a listener for table and rename notifications.
func (s *RenameService) Subscribe(l TableListener) {
	s.table.Subscribe(l)
}

// Select filters and loads the given paths into the mapping table, replacing
// any previous selection. Paths with unsupported extensions or that fail to
// resolve are skipped, never errors. Returns the accepted count and the
// skipped basenames.
func (s *RenameService) Select(paths []string) (int, []string) {
	accepted := make([]string, 0, len(paths))
	var skipped []string

	for _, raw := range paths {
		if !AllowedFile(raw) {
			s.logger.Debug("unsupported file type", "path", raw)
			skipped = append(skipped, filepath.Base(raw))
			continue
		}
		abs, err := s.fsmgr.Resolve(raw)
		if err != nil {
			s.logger.Warn("skipping path", "path", raw, "error", err)
			skipped = append(skipped, filepath.Base(raw))
			continue
		}
		accepted = append(accepted, abs)
	}

	s.table.Create(accepted, s.template)
	s.logger.Info("files selected", "accepted", len(accepted), "skipped", len(skipped))
	return len(accepted), skipped
}

// Rows returns the rendered table content.
func (s *RenameService) Rows() []Row {
	return s.table.Rows()
}

// Len returns the number of table entries.
func (s *RenameService) Len() int {
	return s.table.Len()
}

// Entries returns a copy of the current mappings.
func (s *RenameService) Entries() []PathMapping {
	return s.table.Entries()
}

// SelectedPaths returns the paths currently loaded in the table.
func (s *RenameService) SelectedPaths() []string {
	return s.table.Paths()
}

// UpdateRow replaces the proposed name for one entry with a user-chosen
// stem. The entry's directory and extension are preserved. Empty stems and
// stems containing filename-illegal characters are rejected.
func (s *RenameService) UpdateRow(index int, newStem string) error {
	entry, err := s.table.EntryAt(index)
	if err != nil {
		return err
	}

	stem := strings.TrimSpace(newStem)
	if stem == "" {
		return fmt.Errorf("replacement name is empty")
	}
	if bad := invalidCharsIn(stem); len(bad) > 0 {
		return fmt.Errorf("replacement name contains invalid characters: %s", strings.Join(bad, " "))
	}

	dir := filepath.Dir(entry.MappedPath)
	ext := filepath.Ext(entry.MappedPath)
	return s.table.Update(index, filepath.Join(dir, stem+ext))
}

// DeleteRows removes the entries at the given indices.
func (s *RenameService) DeleteRows(indices []int) {
	s.table.Delete(indices)
}

// Refresh regenerates the whole table from the current selection, picking up
// the active naming template.
func (s *RenameService) Refresh() {
	s.table.Rebuild(s.template)
}

// Template returns the active naming template.
func (s *RenameService) Template() NamingTemplate {
	return s.template
}

// SetTemplate validates and installs a new naming template. The previous
// template stays in effect when validation fails. Callers regenerate the
// table with Refresh once the new template is persisted.
func (s *RenameService) SetTemplate(tpl NamingTemplate) error {
	if err := tpl.Validate(); err != nil {
		return err
	}
	s.template = tpl
	s.logger.Debug("naming template changed", "format", tpl.DateFormat, "method", tpl.Method.String())
	return nil
}

// BatchReport summarizes one applied batch for presentation.
type BatchReport struct {
	BatchID     string
	Results     []RenameResult
	Succeeded   int
	FailedNames []string
}

// ApplyAll renames every table entry in order, reports the results to
// listeners, drops the succeeded rows from the table, and records the batch
// in the journal. Failed entries stay in the table for another attempt.
func (s *RenameService) ApplyAll() *BatchReport {
	mappings := s.table.Entries()
	if len(mappings) == 0 {
		return &BatchReport{}
	}

	batchID := s.idgen.New()
	started := s.clock.Now()
	results := s.executor.ApplyAll(mappings)
	finished := s.clock.Now()

	s.table.NotifyRenameCompleted(results)

	succeeded, failedNames := summarize(results)
	s.table.Delete(succeeded)

	s.journalBatch(batchID, started, finished, mappings, results)
	s.logger.Info("rename batch applied", "batch", batchID, "succeeded", len(succeeded), "failed", len(failedNames))

	return &BatchReport{
		BatchID:     batchID,
		Results:     results,
		Succeeded:   len(succeeded),
		FailedNames: failedNames,
	}
}

// summarize splits batch results into succeeded indices and failed
// basenames, both in apply order.
func summarize(results []RenameResult) ([]int, []string) {
	var succeeded []int
	var failedNames []string
	for i, res := range results {
		if res.Outcome == Success {
			succeeded = append(succeeded, i)
		} else {
			failedNames = append(failedNames, filepath.Base(res.OriginalPath))
		}
	}
	return succeeded, failedNames
}

// journalBatch records an applied batch. The renames already happened, so a
// journal failure is logged rather than surfaced.
func (s *RenameService) journalBatch(id string, started, finished time.Time, mappings []PathMapping, results []RenameResult) {
	if s.journal == nil {
		return
	}

	succeeded, _ := summarize(results)
	batch := &BatchRecord{
		ID:         id,
		StartedAt:  started,
		FinishedAt: finished,
		Succeeded:  len(succeeded),
		Failed:     len(results) - len(succeeded),
	}

	entries := make([]*EntryRecord, len(results))
	for i, res := range results {
		rec := &EntryRecord{
			BatchID:    id,
			SourcePath: res.OriginalPath,
			TargetPath: res.MappedPath,
			Provenance: mappings[i].Provenance.String(),
			Outcome:    res.Outcome.String(),
		}
		if res.Err != nil {
			rec.Error = res.Err.Error()
		}
		entries[i] = rec
	}

	if err := s.journal.RecordBatch(batch, entries); err != nil {
		s.logger.Error("recording rename batch", "batch", id, "error", err)
	}
}
