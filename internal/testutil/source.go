package testutil

import "photorename/internal/rename"

// StubSource is a DateSource returning canned date properties per path.
// Paths without an entry resolve to the no-data property.
type StubSource struct {
	props map[string]rename.DateProperty
}

// NewStubSource creates an empty StubSource.
func NewStubSource() *StubSource {
	return &StubSource{props: make(map[string]rename.DateProperty)}
}

// Set registers the property returned for path.
func (s *StubSource) Set(path string, prop rename.DateProperty) {
	s.props[path] = prop
}

func (s *StubSource) Resolve(path string) rename.DateProperty {
	if prop, ok := s.props[path]; ok {
		return prop
	}
	return rename.NoDateProperty()
}

// Compile-time check
var _ rename.DateSource = (*StubSource)(nil)
