package rename

import "time"

// Provenance identifies which source a resolved timestamp came from.
// Values are ordered by trust, so a larger value always means a more
// reliable origin.
type Provenance int

const (
	// NoData means no source produced a usable timestamp.
	NoData Provenance = iota
	// Manual marks an entry whose proposed name the user edited by hand.
	Manual
	// Modified is the filesystem modification time.
	Modified
	// Created is the filesystem creation time.
	Created
	// Updated is an embedded "last modified" metadata field.
	Updated
	// Taken is an embedded "date taken" metadata field.
	Taken
)

var provenanceNames = map[Provenance]string{
	NoData:   "no_data",
	Manual:   "manual",
	Modified: "modified",
	Created:  "created",
	Updated:  "updated",
	Taken:    "taken",
}

var provenanceLabels = map[Provenance]string{
	NoData:   "No data",
	Manual:   "Edited",
	Modified: "Modified",
	Created:  "Created",
	Updated:  "Updated",
	Taken:    "Taken",
}

// String returns the stable machine name used in logs and journal records.
func (p Provenance) String() string {
	if name, ok := provenanceNames[p]; ok {
		return name
	}
	return "unknown"
}

// Label returns the display form shown in table rows.
func (p Provenance) Label() string {
	if label, ok := provenanceLabels[p]; ok {
		return label
	}
	return "Unknown"
}

// ParseProvenance maps a machine name back to its Provenance.
// Unrecognized names map to NoData.
func ParseProvenance(name string) Provenance {
	for p, n := range provenanceNames {
		if n == name {
			return p
		}
	}
	return NoData
}

// DateProperty is a resolved timestamp together with its origin.
// It is immutable once produced. The timestamp is the zero time if and
// only if the provenance is NoData; the zero value of the type is the
// "nothing resolvable" result.
type DateProperty struct {
	Time       time.Time
	Provenance Provenance
}

// NewDateProperty builds the property for a successfully resolved timestamp.
func NewDateProperty(t time.Time, p Provenance) DateProperty {
	return DateProperty{Time: t, Provenance: p}
}

// NoDateProperty returns the "nothing resolvable" value.
func NoDateProperty() DateProperty {
	return DateProperty{}
}

// HasTime reports whether a timestamp was resolved at all.
func (d DateProperty) HasTime() bool {
	return d.Provenance != NoData
}
