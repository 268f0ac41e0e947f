package rename

import "fmt"

// Outcome is the per-entry result of a rename attempt.
type Outcome int

const (
	Failure Outcome = iota
	Success
)

func (o Outcome) String() string {
	if o == Success {
		return "SUCCESS"
	}
	return "FAILURE"
}

// RenameResult pairs an entry's paths with what happened to it.
type RenameResult struct {
	OriginalPath string
	MappedPath   string
	Outcome      Outcome
	Err          error
}

// Executor applies path mappings to the filesystem.
type Executor struct {
	fsmgr  FilesystemManager
	logger Logger
}

func NewExecutor(fsmgr FilesystemManager, logger Logger) *Executor {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Executor{fsmgr: fsmgr, logger: logger}
}

// Apply renames a single mapping. Equal source and destination is a no-op
// reported as success without touching the filesystem. Errors never
// propagate; they mark the entry failed.
func (e *Executor) Apply(m PathMapping) RenameResult {
	result := RenameResult{
		OriginalPath: m.OriginalPath,
		MappedPath:   m.MappedPath,
	}

	if m.OriginalPath == m.MappedPath {
		result.Outcome = Success
		return result
	}

	// rename(2) silently replaces an existing destination on most
	// filesystems; check first so a collision that appeared after the table
	// was built reports a failure instead of clobbering the other file.
	if e.fsmgr.Exists(m.MappedPath) {
		result.Err = fmt.Errorf("destination already exists: %s", m.MappedPath)
		e.logger.Warn("rename skipped", "from", m.OriginalPath, "to", m.MappedPath, "error", result.Err)
		return result
	}

	if err := e.fsmgr.Rename(m.OriginalPath, m.MappedPath); err != nil {
		result.Err = err
		e.logger.Warn("rename failed", "from", m.OriginalPath, "to", m.MappedPath, "error", err)
		return result
	}

	result.Outcome = Success
	e.logger.Debug("renamed", "from", m.OriginalPath, "to", m.MappedPath)
	return result
}

// ApplyAll renames every mapping in order. One entry's failure does not
// stop the rest; results preserve entry order.
func (e *Executor) ApplyAll(mappings []PathMapping) []RenameResult {
	results := make([]RenameResult, len(mappings))
	for i, m := range mappings {
		results[i] = e.Apply(m)
	}
	return results
}
