package metadata

import (
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	"photorename/internal/rename"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// exifTimeLayout is the fixed textual layout EXIF datetime fields use.
const exifTimeLayout = "2006:01:02 15:04:05"

// exifOffsetLayout covers writers that append a zone offset to the field.
const exifOffsetLayout = "2006:01:02 15:04:05-07:00"

// EXIFSource reads embedded still-image metadata. DateTimeOriginal maps to
// Taken; when it is absent or unreadable, DateTime maps to Updated.
type EXIFSource struct {
	loc *time.Location
}

// NewEXIFSource creates the source. loc is the zone offset-less timestamps
// are interpreted in; nil selects the package reference zone.
func NewEXIFSource(loc *time.Location) *EXIFSource {
	if loc == nil {
		loc = ReferenceZone()
	}
	return &EXIFSource{loc: loc}
}

var _ rename.DateSource = (*EXIFSource)(nil)

// Resolve extracts the best embedded timestamp from a still image. Files
// that are not decodable images, missing fields, and malformed values all
// resolve to no data.
func (s *EXIFSource) Resolve(path string) (prop rename.DateProperty) {
	// goexif can panic on malformed maker notes; treat that as no data.
	defer func() {
		if recover() != nil {
			prop = rename.NoDateProperty()
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return rename.NoDateProperty()
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return rename.NoDateProperty()
	}

	if t, ok := s.field(x, exif.DateTimeOriginal); ok {
		return rename.NewDateProperty(t, rename.Taken)
	}
	if t, ok := s.field(x, exif.DateTime); ok {
		return rename.NewDateProperty(t, rename.Updated)
	}
	return rename.NoDateProperty()
}

func (s *EXIFSource) field(x *exif.Exif, name exif.FieldName) (time.Time, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return time.Time{}, false
	}
	raw, err := tag.StringVal()
	if err != nil {
		return time.Time{}, false
	}
	return ParseEXIFTime(raw, s.loc)
}

// ParseEXIFTime parses an EXIF datetime string. Values without an offset
// are interpreted in loc; values carrying one are converted to loc, so
// every result is comparable regardless of the recording device's zone
// setting.
func ParseEXIFTime(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(exifOffsetLayout, raw); err == nil {
		return t.In(loc), true
	}
	t, err := time.ParseInLocation(exifTimeLayout, raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
