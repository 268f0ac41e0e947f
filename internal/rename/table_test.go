package rename_test

import (
	"fmt"
	"testing"
	"time"

	"photorename/internal/rename"
	"photorename/internal/testutil"
)

// recordingListener captures every table notification in order.
type recordingListener struct {
	created   [][]rename.Row
	updated   []updatedEvent
	completed [][]rename.RenameResult
}

type updatedEvent struct {
	index int
	row   rename.Row
}

func (l *recordingListener) TableCreated(rows []rename.Row) {
	l.created = append(l.created, rows)
}

func (l *recordingListener) TableUpdated(index int, row rename.Row) {
	l.updated = append(l.updated, updatedEvent{index: index, row: row})
}

func (l *recordingListener) RenameCompleted(results []rename.RenameResult) {
	l.completed = append(l.completed, results)
}

var _ rename.TableListener = (*recordingListener)(nil)

// newTestTable builds a table whose dates come from filesystem timestamps.
func newTestTable(t *testing.T, fsmgr *testutil.MockFilesystemManager) *rename.MappingTable {
	t.Helper()

	resolver := rename.NewResolver(rename.NewStatSource(fsmgr))
	formatter := rename.NewFormatter(fsmgr)
	executor := rename.NewExecutor(fsmgr, nil)
	return rename.NewMappingTable(resolver, formatter, executor)
}

// addPhotos adds n files with timestamps one minute apart and returns their
// paths in timestamp order.
func addPhotos(fsmgr *testutil.MockFilesystemManager, n int) []string {
	base := time.Date(2023, 5, 10, 14, 22, 31, 0, time.UTC)
	paths := make([]string, n)
	for i := range paths {
		p := fmt.Sprintf("/photos/img_%03d.jpg", i)
		ts := base.Add(time.Duration(i) * time.Minute)
		fsmgr.AddFileTimes(p, ts, ts)
		paths[i] = p
	}
	return paths
}

func TestMappingTable_Create(t *testing.T) {
	t.Run("maps each file to its resolved date", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 2)
		table := newTestTable(t, fsmgr)

		table.Create(paths, rename.DefaultTemplate())

		rows := table.Rows()
		if len(rows) != 2 {
			t.Fatalf("Rows() returned %d rows, want 2", len(rows))
		}
		if rows[0].After != "2023-05-10_14-22-31.jpg" {
			t.Errorf("rows[0].After = %q, want %q", rows[0].After, "2023-05-10_14-22-31.jpg")
		}
		if rows[1].After != "2023-05-10_14-23-31.jpg" {
			t.Errorf("rows[1].After = %q, want %q", rows[1].After, "2023-05-10_14-23-31.jpg")
		}
		if rows[0].Label != "Created" {
			t.Errorf("rows[0].Label = %q, want %q", rows[0].Label, "Created")
		}
	})

	t.Run("disambiguates files sharing a timestamp", func(t *testing.T) {
		ts := time.Date(2023, 5, 10, 14, 22, 31, 0, time.UTC)
		fsmgr := testutil.NewMockFilesystemManager()
		fsmgr.AddFileTimes("/photos/a.jpg", ts, ts)
		fsmgr.AddFileTimes("/photos/b.jpg", ts, ts)
		table := newTestTable(t, fsmgr)

		table.Create([]string{"/photos/a.jpg", "/photos/b.jpg"}, rename.DefaultTemplate())

		rows := table.Rows()
		if rows[0].After != "2023-05-10_14-22-31.jpg" {
			t.Errorf("rows[0].After = %q, want %q", rows[0].After, "2023-05-10_14-22-31.jpg")
		}
		if rows[1].After != "2023-05-10_14-22-31 (1).jpg" {
			t.Errorf("rows[1].After = %q, want %q", rows[1].After, "2023-05-10_14-22-31 (1).jpg")
		}
	})

	t.Run("replaces the previous selection", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 3)
		table := newTestTable(t, fsmgr)

		table.Create(paths, rename.DefaultTemplate())
		table.Create(paths[:1], rename.DefaultTemplate())

		if table.Len() != 1 {
			t.Errorf("Len() = %d, want 1", table.Len())
		}
	})

	t.Run("notifies listeners with the full content", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 2)
		table := newTestTable(t, fsmgr)
		listener := &recordingListener{}
		table.Subscribe(listener)

		table.Create(paths, rename.DefaultTemplate())

		if len(listener.created) != 1 {
			t.Fatalf("TableCreated fired %d times, want 1", len(listener.created))
		}
		if len(listener.created[0]) != 2 {
			t.Errorf("TableCreated rows = %d, want 2", len(listener.created[0]))
		}
	})
}

func TestMappingTable_Update(t *testing.T) {
	t.Run("marks the entry manual and notifies", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 2)
		table := newTestTable(t, fsmgr)
		table.Create(paths, rename.DefaultTemplate())
		listener := &recordingListener{}
		table.Subscribe(listener)

		if err := table.Update(0, "/photos/vacation.jpg"); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		entry, err := table.EntryAt(0)
		if err != nil {
			t.Fatalf("EntryAt() error = %v", err)
		}
		if entry.MappedPath != "/photos/vacation.jpg" {
			t.Errorf("MappedPath = %q, want %q", entry.MappedPath, "/photos/vacation.jpg")
		}
		if entry.Provenance != rename.Manual {
			t.Errorf("Provenance = %v, want Manual", entry.Provenance)
		}
		if len(listener.updated) != 1 || listener.updated[0].index != 0 {
			t.Fatalf("TableUpdated events = %+v, want one event for index 0", listener.updated)
		}
		if listener.updated[0].row.Label != "Edited" {
			t.Errorf("updated row label = %q, want %q", listener.updated[0].row.Label, "Edited")
		}
	})

	t.Run("disambiguates against the other entries", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 2)
		table := newTestTable(t, fsmgr)
		table.Create(paths, rename.DefaultTemplate())

		other, err := table.EntryAt(1)
		if err != nil {
			t.Fatalf("EntryAt() error = %v", err)
		}

		if err := table.Update(0, other.MappedPath); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		entry, _ := table.EntryAt(0)
		if entry.MappedPath != "/photos/2023-05-10_14-23-31 (1).jpg" {
			t.Errorf("MappedPath = %q, want %q", entry.MappedPath, "/photos/2023-05-10_14-23-31 (1).jpg")
		}
	})

	t.Run("skips disambiguation when reverting to the original name", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 1)
		table := newTestTable(t, fsmgr)
		table.Create(paths, rename.DefaultTemplate())

		// The original file is still on disk, so a uniqueness check against
		// the disk would wrongly append a counter here.
		if err := table.Update(0, paths[0]); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		entry, _ := table.EntryAt(0)
		if entry.MappedPath != paths[0] {
			t.Errorf("MappedPath = %q, want original %q", entry.MappedPath, paths[0])
		}
	})

	t.Run("rejects an out-of-range index", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		table := newTestTable(t, fsmgr)

		if err := table.Update(0, "/photos/x.jpg"); err == nil {
			t.Error("Update() expected error for empty table, got nil")
		}
	})
}

func TestMappingTable_Delete(t *testing.T) {
	t.Run("removes the entries at the given indices", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 5)
		table := newTestTable(t, fsmgr)
		table.Create(paths, rename.DefaultTemplate())

		table.Delete([]int{1, 3})

		if table.Len() != 3 {
			t.Fatalf("Len() = %d, want 3", table.Len())
		}
		want := []string{paths[0], paths[2], paths[4]}
		for i, entry := range table.Entries() {
			if entry.OriginalPath != want[i] {
				t.Errorf("entries[%d].OriginalPath = %q, want %q", i, entry.OriginalPath, want[i])
			}
		}
	})

	t.Run("ignores duplicate and out-of-range indices", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 3)
		table := newTestTable(t, fsmgr)
		table.Create(paths, rename.DefaultTemplate())

		table.Delete([]int{1, 1, 99, -2})

		if table.Len() != 2 {
			t.Errorf("Len() = %d, want 2", table.Len())
		}
	})

	t.Run("drops the selected path along with the entry", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 3)
		table := newTestTable(t, fsmgr)
		table.Create(paths, rename.DefaultTemplate())

		table.Delete([]int{0})
		table.Rebuild(rename.DefaultTemplate())

		if table.Len() != 2 {
			t.Fatalf("Len() after rebuild = %d, want 2", table.Len())
		}
		entry, _ := table.EntryAt(0)
		if entry.OriginalPath != paths[1] {
			t.Errorf("entries[0].OriginalPath = %q, want %q", entry.OriginalPath, paths[1])
		}
	})
}

func TestMappingTable_Rebuild(t *testing.T) {
	t.Run("reformats the selection under a new template", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 1)
		table := newTestTable(t, fsmgr)
		table.Create(paths, rename.DefaultTemplate())

		table.Rebuild(rename.NamingTemplate{DateFormat: "%Y%m%d", Method: rename.DateOnly})

		rows := table.Rows()
		if rows[0].After != "20230510.jpg" {
			t.Errorf("rows[0].After = %q, want %q", rows[0].After, "20230510.jpg")
		}
	})

	t.Run("discards manual edits", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 1)
		table := newTestTable(t, fsmgr)
		table.Create(paths, rename.DefaultTemplate())

		if err := table.Update(0, "/photos/vacation.jpg"); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		table.Rebuild(rename.DefaultTemplate())

		entry, _ := table.EntryAt(0)
		if entry.Provenance == rename.Manual {
			t.Error("Provenance still Manual after rebuild")
		}
	})
}

func TestMappingTable_Apply(t *testing.T) {
	t.Run("renames one entry and reports the result", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		paths := addPhotos(fsmgr, 2)
		table := newTestTable(t, fsmgr)
		table.Create(paths, rename.DefaultTemplate())
		listener := &recordingListener{}
		table.Subscribe(listener)

		result, err := table.Apply(0)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if result.Outcome != rename.Success {
			t.Errorf("Apply() outcome = %v, want Success", result.Outcome)
		}
		if fsmgr.Exists(paths[0]) {
			t.Error("source file still exists after apply")
		}
		if len(listener.completed) != 1 || len(listener.completed[0]) != 1 {
			t.Errorf("RenameCompleted events = %d, want one single-result event", len(listener.completed))
		}
	})

	t.Run("rejects an out-of-range index", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		table := newTestTable(t, fsmgr)

		if _, err := table.Apply(0); err == nil {
			t.Error("Apply() expected error for empty table, got nil")
		}
	})
}
