package rename

import (
	"fmt"
	"path/filepath"
	"slices"
)

// PathMapping links one selected file to its proposed new path.
type PathMapping struct {
	OriginalPath string
	MappedPath   string
	Provenance   Provenance
}

// Row renders the mapping the way presentation layers display it.
func (m PathMapping) Row() Row {
	return Row{
		Before: filepath.Base(m.OriginalPath),
		After:  filepath.Base(m.MappedPath),
		Label:  m.Provenance.Label(),
	}
}

// Row is the rendered form of one mapping: original basename, proposed
// basename, and the provenance display label.
type Row struct {
	Before string
	After  string
	Label  string
}

// TableListener receives mapping-table change notifications.
// Callbacks run synchronously on the goroutine that mutated the table.
type TableListener interface {
	// TableCreated fires when the table is built or rebuilt, with the
	// complete rendered content.
	TableCreated(rows []Row)

	// TableUpdated fires when a single entry changes.
	TableUpdated(index int, row Row)

	// RenameCompleted fires after an apply, with the ordered per-entry
	// results.
	RenameCompleted(results []RenameResult)
}

// MappingTable owns the ordered collection of path mappings for the current
// selection. All mutations go through its methods, which notify subscribed
// listeners afterwards. Entry order is selection order.
type MappingTable struct {
	resolver  *Resolver
	formatter *Formatter
	executor  *Executor
	paths     []string
	entries   []PathMapping
	listeners []TableListener
}

func NewMappingTable(resolver *Resolver, formatter *Formatter, executor *Executor) *MappingTable {
	return &MappingTable{
		resolver:  resolver,
		formatter: formatter,
		executor:  executor,
	}
}

// Subscribe registers a listener for subsequent table changes.
func (t *MappingTable) Subscribe(l TableListener) {
	t.listeners = append(t.listeners, l)
}

// Create replaces the whole table: every path is resolved and formatted in
// input order, with uniqueness tracked cumulatively across the batch so two
// files resolving to the same date get distinct names.
func (t *MappingTable) Create(paths []string, tpl NamingTemplate) {
	t.paths = slices.Clone(paths)
	t.entries = make([]PathMapping, 0, len(paths))
	taken := make([]string, 0, len(paths))

	for _, path := range paths {
		prop := t.resolver.Resolve(path)
		mapped := t.formatter.Format(path, prop, tpl, taken)
		t.entries = append(t.entries, PathMapping{
			OriginalPath: path,
			MappedPath:   mapped,
			Provenance:   prop.Provenance,
		})
		taken = append(taken, mapped)
	}

	t.notifyCreated()
}

// Rebuild regenerates the table from the currently selected paths, used
// after the naming template changes.
func (t *MappingTable) Rebuild(tpl NamingTemplate) {
	t.Create(t.paths, tpl)
}

// Update replaces one entry's mapped path with a user-chosen one. A path
// that differs from the entry's original is disambiguated against every
// other entry's mapped path and against the disk. The entry's provenance
// becomes Manual.
func (t *MappingTable) Update(index int, newMappedPath string) error {
	if index < 0 || index >= len(t.entries) {
		return fmt.Errorf("mapping index out of range: %d", index)
	}

	entry := t.entries[index]
	mapped := newMappedPath
	if mapped != entry.OriginalPath {
		others := make([]string, 0, len(t.entries)-1)
		for i, e := range t.entries {
			if i != index {
				others = append(others, e.MappedPath)
			}
		}
		mapped = t.formatter.MakeUnique(mapped, others)
	}

	t.entries[index] = PathMapping{
		OriginalPath: entry.OriginalPath,
		MappedPath:   mapped,
		Provenance:   Manual,
	}
	t.notifyUpdated(index)
	return nil
}

// Delete removes the entries at the given indices along with their selected
// paths. Indices are processed in descending order so earlier removals
// cannot shift the later ones; out-of-range and duplicate indices are
// ignored.
func (t *MappingTable) Delete(indices []int) {
	idx := slices.Clone(indices)
	slices.Sort(idx)
	idx = slices.Compact(idx)

	for i := len(idx) - 1; i >= 0; i-- {
		n := idx[i]
		if n < 0 || n >= len(t.entries) {
			continue
		}
		t.entries = slices.Delete(t.entries, n, n+1)
		t.paths = slices.Delete(t.paths, n, n+1)
	}

	t.notifyCreated()
}

// Apply renames the single entry at index and reports the result to
// listeners.
func (t *MappingTable) Apply(index int) (RenameResult, error) {
	if index < 0 || index >= len(t.entries) {
		return RenameResult{}, fmt.Errorf("mapping index out of range: %d", index)
	}
	result := t.executor.Apply(t.entries[index])
	t.NotifyRenameCompleted([]RenameResult{result})
	return result, nil
}

// Len returns the number of entries.
func (t *MappingTable) Len() int {
	return len(t.entries)
}

// EntryAt returns the mapping at index.
func (t *MappingTable) EntryAt(index int) (PathMapping, error) {
	if index < 0 || index >= len(t.entries) {
		return PathMapping{}, fmt.Errorf("mapping index out of range: %d", index)
	}
	return t.entries[index], nil
}

// Entries returns a copy of the current mappings in table order.
func (t *MappingTable) Entries() []PathMapping {
	return slices.Clone(t.entries)
}

// Paths returns a copy of the currently selected paths in selection order.
func (t *MappingTable) Paths() []string {
	return slices.Clone(t.paths)
}

// Rows returns the rendered form of every entry in table order.
func (t *MappingTable) Rows() []Row {
	rows := make([]Row, len(t.entries))
	for i, e := range t.entries {
		rows[i] = e.Row()
	}
	return rows
}

// NotifyRenameCompleted forwards batch results to listeners. The executor
// never mutates the table, so whoever ran it routes the results through
// here.
func (t *MappingTable) NotifyRenameCompleted(results []RenameResult) {
	for _, l := range t.listeners {
		l.RenameCompleted(results)
	}
}

func (t *MappingTable) notifyCreated() {
	rows := t.Rows()
	for _, l := range t.listeners {
		l.TableCreated(rows)
	}
}

func (t *MappingTable) notifyUpdated(index int) {
	row := t.entries[index].Row()
	for _, l := range t.listeners {
		l.TableUpdated(index, row)
	}
}
