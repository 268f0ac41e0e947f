package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"photorename/internal/config"
	"photorename/internal/database"
	"photorename/internal/fs"
	"photorename/internal/metadata"
	"photorename/internal/rename"
)

// App is the application layer between the CLI and RenameService.
// It constructs all dependencies from config and default paths, exposes
// high-level operations that accept raw string paths, and manages the
// journal lifecycle on Close.
type App struct {
	cfg        *config.Config
	configPath string
	fsmgr      rename.FilesystemManager
	journal    rename.Journal
	service    *rename.RenameService
	op         *Operation
	clock      rename.Clock
	logger     rename.Logger
	logFile    *os.File
}

// NewApp creates a fully wired App from the given config and default paths.
// operation identifies the CLI command being run (e.g. "Preview", "Apply").
// The caller must call Close when done.
func NewApp(cfg *config.Config, defaults map[string]string, operation string, verbose bool) (*App, error) {
	tpl, err := cfg.Template()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	fsmgr := fs.NewOSFilesystemManager()

	journal, err := database.NewJournal(defaults["journal_path"])
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	clock := rename.RealClock{}
	op := NewOperation(operation, clock)
	slogger, logFile, err := newLogger(defaults["log_dir"], op.ID, verbose)
	if err != nil {
		journal.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	zone := metadata.ReferenceZone()
	resolver := rename.NewResolver(
		metadata.NewEXIFSource(zone),
		metadata.NewContainerSource(zone),
		rename.NewStatSource(fsmgr),
	)

	svc := rename.NewRenameService(fsmgr, resolver, journal, tpl, logger, clock, rename.UUIDGenerator{})

	logger.Info("operation started", "operation", operation)

	return &App{
		cfg:        cfg,
		configPath: defaults["config_path"],
		fsmgr:      fsmgr,
		journal:    journal,
		service:    svc,
		op:         op,
		clock:      clock,
		logger:     logger,
		logFile:    logFile,
	}, nil
}

// Service returns the underlying RenameService, for callers that drive the
// mapping table directly.
func (a *App) Service() *rename.RenameService {
	return a.service
}

// Config returns the active settings.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Select filters the given paths to supported media files, resolves them, and
// builds the mapping table. Returns the number of selected files and the
// basenames that were skipped.
func (a *App) Select(rawPaths []string) (int, []string) {
	selected, skipped := a.service.Select(rawPaths)
	if selected > 0 {
		a.rememberFolder(filepath.Dir(a.service.SelectedPaths()[0]))
	}
	return selected, skipped
}

// Rows returns the current mapping table as display rows.
func (a *App) Rows() []rename.Row {
	return a.service.Rows()
}

// Apply renames every file in the mapping table and records the batch in the
// journal.
func (a *App) Apply() *rename.BatchReport {
	return a.service.ApplyAll()
}

// History returns the most recent rename batches, newest first.
func (a *App) History(limit int) ([]*rename.BatchRecord, error) {
	return a.journal.ListBatches(limit)
}

// BatchEntries returns a batch's entries in apply order.
func (a *App) BatchEntries(batchID string) ([]*rename.EntryRecord, error) {
	return a.journal.EntriesForBatch(batchID)
}

// Undo reverts the batch with the given ID, or the most recent batch when
// batchID is empty.
func (a *App) Undo(batchID string) (*rename.BatchReport, error) {
	var batch *rename.BatchRecord
	var err error
	if batchID == "" {
		batch, err = a.journal.LatestBatch()
	} else {
		batch, err = a.journal.FindBatch(batchID)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up batch: %w", err)
	}
	if batch == nil {
		if batchID == "" {
			return nil, fmt.Errorf("no rename batches recorded")
		}
		return nil, fmt.Errorf("batch not found: %s", batchID)
	}

	entries, err := a.journal.EntriesForBatch(batch.ID)
	if err != nil {
		return nil, fmt.Errorf("loading batch entries: %w", err)
	}

	return a.service.UndoBatch(batch, entries), nil
}

// UpdateConfig applies a settings patch, persists the result, and switches
// the service to the new naming template.
func (a *App) UpdateConfig(p config.Patch) (*config.Config, error) {
	updated, err := a.cfg.Update(p)
	if err != nil {
		return nil, err
	}
	if err := config.WriteToFile(a.configPath, updated); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}
	a.cfg = updated

	// Update validated the patched settings, so the template conversion
	// cannot fail here.
	if tpl, err := updated.Template(); err == nil {
		a.service.SetTemplate(tpl)
	}
	return updated, nil
}

// rememberFolder records the folder of the most recent selection in the
// config file. Persistence failures are logged, not returned: losing the
// remembered folder must not fail the rename operation.
func (a *App) rememberFolder(dir string) {
	firstUse := false
	updated, err := a.cfg.Update(config.Patch{LastOpenedFolder: &dir, FirstUse: &firstUse})
	if err != nil {
		a.logger.Warn("updating config", "error", err)
		return
	}
	if err := config.WriteToFile(a.configPath, updated); err != nil {
		a.logger.Warn("saving config", "error", err)
		return
	}
	a.cfg = updated
}

// Close logs the operation summary and closes the journal and log file.
func (a *App) Close() error {
	var firstErr error

	a.logger.Info("operation finished",
		"operation", a.op.Name,
		"duration", a.op.Elapsed(a.clock).Truncate(time.Millisecond).String(),
	)

	if err := a.journal.Close(); err != nil {
		firstErr = fmt.Errorf("closing journal: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
