package rename

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ncruces/go-strftime"
)

// Formatter derives proposed filenames from resolved dates and guarantees
// the results collide neither with existing files nor with names already
// assigned in the same batch.
type Formatter struct {
	fsmgr FilesystemManager
}

func NewFormatter(fsmgr FilesystemManager) *Formatter {
	return &Formatter{fsmgr: fsmgr}
}

// Format builds the proposed path for originalPath under the given template.
// When prop carries no timestamp the original path is returned untouched.
// taken holds the paths already assigned to other files in the batch; a
// changed name is disambiguated against it and against the disk, while an
// unchanged name skips the uniqueness check entirely.
func (f *Formatter) Format(originalPath string, prop DateProperty, tpl NamingTemplate, taken []string) string {
	if !prop.HasTime() {
		return originalPath
	}

	date := strftime.Format(tpl.DateFormat, prop.Time)
	dir := filepath.Dir(originalPath)
	ext := filepath.Ext(originalPath)
	stem := strings.TrimSuffix(filepath.Base(originalPath), ext)

	var name string
	switch tpl.Method {
	case DateBeforeOriginal:
		name = date + stem
	case DateAfterOriginal:
		name = stem + date
	default:
		name = date
	}

	candidate := filepath.Join(dir, name+ext)
	if candidate == originalPath {
		return candidate
	}
	return f.MakeUnique(candidate, taken)
}

// MakeUnique appends a parenthesized counter before the extension until the
// candidate collides with neither the disk nor the taken set. The counter
// starts at 1 and the first free value wins, so the result is deterministic
// for a given candidate, taken set, and disk state.
func (f *Formatter) MakeUnique(candidate string, taken []string) string {
	dir := filepath.Dir(candidate)
	ext := filepath.Ext(candidate)
	stem := strings.TrimSuffix(filepath.Base(candidate), ext)

	path := candidate
	for counter := 1; f.isTaken(path, taken); counter++ {
		path = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, counter, ext))
	}
	return path
}

func (f *Formatter) isTaken(path string, taken []string) bool {
	return f.fsmgr.Exists(path) || slices.Contains(taken, path)
}
