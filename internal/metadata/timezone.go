// Package metadata implements the embedded-metadata date sources: EXIF
// fields for still images and the movie header for ISO-BMFF containers.
//
// Camera clocks rarely record a zone offset, so extracted timestamps are
// interpreted in a fixed reference zone and offset-carrying values are
// converted to it. That keeps dates from mixed devices comparable and makes
// formatted names stable across machines.
package metadata

import "time"

// ReferenceZoneName is the zone metadata timestamps are normalized to.
const ReferenceZoneName = "Asia/Tokyo"

var referenceZone = loadReferenceZone()

// loadReferenceZone falls back to fixed JST when the platform zone database
// is unavailable; JST has no DST, so the fixed offset is always correct.
func loadReferenceZone() *time.Location {
	loc, err := time.LoadLocation(ReferenceZoneName)
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// ReferenceZone returns the zone used to interpret and normalize metadata
// timestamps.
func ReferenceZone() *time.Location {
	return referenceZone
}
