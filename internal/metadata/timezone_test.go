package metadata

import (
	"testing"
	"time"
)

func TestReferenceZone(t *testing.T) {
	loc := ReferenceZone()
	if loc == nil {
		t.Fatal("ReferenceZone() = nil")
	}

	// JST is UTC+9 with no daylight saving, so the offset holds year-round.
	for _, month := range []time.Month{time.January, time.July} {
		_, offset := time.Date(2023, month, 1, 12, 0, 0, 0, loc).Zone()
		if offset != 9*60*60 {
			t.Errorf("offset in %v = %d, want %d", month, offset, 9*60*60)
		}
	}
}
