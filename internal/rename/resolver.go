package rename

// DateSource extracts a timestamp from a single origin: embedded image
// metadata, container metadata, or filesystem timestamps. Implementations
// are total: every failure resolves to NoData, never an error.
type DateSource interface {
	Resolve(path string) DateProperty
}

// Resolver tries a fixed, ordered list of sources and keeps the first
// usable timestamp, so the most trustworthy available origin always wins.
type Resolver struct {
	sources []DateSource
}

// NewResolver builds a resolver over sources, tried in the given order.
func NewResolver(sources ...DateSource) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve returns the best available DateProperty for path. It never fails;
// when every source comes up empty the result is NoData.
func (r *Resolver) Resolve(path string) DateProperty {
	for _, src := range r.sources {
		if prop := src.Resolve(path); prop.HasTime() {
			return prop
		}
	}
	return NoDateProperty()
}

// StatSource derives a DateProperty from filesystem timestamps. Copy
// operations can push a file's recorded creation time past its true
// modification time, so the earlier of the two is reported as Created and
// the later as Modified.
type StatSource struct {
	fsmgr FilesystemManager
}

func NewStatSource(fsmgr FilesystemManager) *StatSource {
	return &StatSource{fsmgr: fsmgr}
}

var _ DateSource = (*StatSource)(nil)

// Resolve reads the file's timestamps. A failed stat resolves to NoData.
func (s *StatSource) Resolve(path string) DateProperty {
	times, err := s.fsmgr.Times(path)
	if err != nil {
		return NoDateProperty()
	}
	if !times.Ctime.After(times.Mtime) {
		return NewDateProperty(times.Ctime, Created)
	}
	return NewDateProperty(times.Mtime, Modified)
}
