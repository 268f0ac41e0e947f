package database

import (
	"database/sql"
	"errors"
	"fmt"

	"photorename/internal/database/migrations"
	"photorename/internal/rename"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteJournal implements the Journal interface using SQLite.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

// NewSQLiteJournal opens the journal at path and brings its schema up to
// date. path can be a file path or ":memory:" for an in-memory journal.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := openConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal schema: %w", err)
	}

	return &SQLiteJournal{db: db, path: path}, nil
}

// openConnection opens and configures a SQLite connection with appropriate PRAGMAs.
// path can be a file path or ":memory:" for an in-memory database.
func openConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// RecordBatch stores a batch and its entries in a single transaction.
func (j *SQLiteJournal) RecordBatch(batch *rename.BatchRecord, entries []*rename.EntryRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO rename_batches (id, started_at, finished_at, succeeded, failed)
		 VALUES (?, ?, ?, ?, ?)`,
		batch.ID, batch.StartedAt, batch.FinishedAt, batch.Succeeded, batch.Failed,
	)
	if err != nil {
		return fmt.Errorf("inserting batch: %w", err)
	}

	for _, entry := range entries {
		_, err = tx.Exec(
			`INSERT INTO rename_entries (batch_id, source_path, target_path, provenance, outcome, error)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			entry.BatchID, entry.SourcePath, entry.TargetPath, entry.Provenance, entry.Outcome, entry.Error,
		)
		if err != nil {
			return fmt.Errorf("inserting batch entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListBatches returns the most recent batches, newest first. Batches that
// share a start time fall back to insertion order.
func (j *SQLiteJournal) ListBatches(limit int) ([]*rename.BatchRecord, error) {
	rows, err := j.db.Query(
		`SELECT id, started_at, finished_at, succeeded, failed
		 FROM rename_batches
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	defer rows.Close()

	var batches []*rename.BatchRecord
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}
		batches = append(batches, batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	return batches, nil
}

// FindBatch returns the batch with the given ID, or nil when absent.
func (j *SQLiteJournal) FindBatch(id string) (*rename.BatchRecord, error) {
	row := j.db.QueryRow(
		`SELECT id, started_at, finished_at, succeeded, failed
		 FROM rename_batches WHERE id = ?`, id)

	batch, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding batch: %w", err)
	}
	return batch, nil
}

// LatestBatch returns the most recent batch, or nil when the journal is
// empty.
func (j *SQLiteJournal) LatestBatch() (*rename.BatchRecord, error) {
	row := j.db.QueryRow(
		`SELECT id, started_at, finished_at, succeeded, failed
		 FROM rename_batches
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT 1`)

	batch, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Empty journal
		}
		return nil, fmt.Errorf("finding latest batch: %w", err)
	}
	return batch, nil
}

// EntriesForBatch returns a batch's entries in apply order.
func (j *SQLiteJournal) EntriesForBatch(batchID string) ([]*rename.EntryRecord, error) {
	rows, err := j.db.Query(
		`SELECT batch_id, source_path, target_path, provenance, outcome, error
		 FROM rename_entries
		 WHERE batch_id = ?
		 ORDER BY id ASC`, batchID)
	if err != nil {
		return nil, fmt.Errorf("listing batch entries: %w", err)
	}
	defer rows.Close()

	var entries []*rename.EntryRecord
	for rows.Next() {
		var e rename.EntryRecord
		if err := rows.Scan(&e.BatchID, &e.SourcePath, &e.TargetPath, &e.Provenance, &e.Outcome, &e.Error); err != nil {
			return nil, fmt.Errorf("scanning batch entry: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing batch entries: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*rename.BatchRecord, error) {
	var b rename.BatchRecord
	if err := row.Scan(&b.ID, &b.StartedAt, &b.FinishedAt, &b.Succeeded, &b.Failed); err != nil {
		return nil, err
	}
	return &b, nil
}

// Path returns the journal file path (or ":memory:").
func (j *SQLiteJournal) Path() string {
	return j.path
}

// Close closes the journal connection.
func (j *SQLiteJournal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteJournal implements rename.Journal interface
var _ rename.Journal = (*SQLiteJournal)(nil)
