package metadata

import (
	"os"
	"time"

	"github.com/abema/go-mp4"

	"photorename/internal/rename"
)

// mvhd timestamps count seconds since 1904-01-01 UTC; the unix epoch starts
// 2082844800 seconds later.
const mvhdEpochOffset = 2082844800

// ContainerSource reads the movie header of ISO-BMFF files (mp4, m4v, mov).
// The creation time maps to Taken; when it is unset, the modification time
// maps to Updated.
type ContainerSource struct {
	loc *time.Location
}

// NewContainerSource creates the source. nil loc selects the package
// reference zone.
func NewContainerSource(loc *time.Location) *ContainerSource {
	if loc == nil {
		loc = ReferenceZone()
	}
	return &ContainerSource{loc: loc}
}

var _ rename.DateSource = (*ContainerSource)(nil)

// Resolve extracts the best movie-header timestamp. Anything that is not an
// ISO-BMFF file with usable header times resolves to no data.
func (s *ContainerSource) Resolve(path string) (prop rename.DateProperty) {
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

	boxes, err := mp4.ExtractBoxWithPayload(f, nil, mp4.BoxPath{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()})
	if err != nil || len(boxes) == 0 {
		return rename.NoDateProperty()
	}
	mvhd, ok := boxes[0].Payload.(*mp4.Mvhd)
	if !ok {
		return rename.NoDateProperty()
	}

	if t, ok := s.mvhdTime(mvhd.GetCreationTime()); ok {
		return rename.NewDateProperty(t, rename.Taken)
	}
	if t, ok := s.mvhdTime(mvhd.GetModificationTime()); ok {
		return rename.NewDateProperty(t, rename.Updated)
	}
	return rename.NoDateProperty()
}

// mvhdTime converts a raw movie-header timestamp to the reference zone.
// Zero and pre-unix-epoch values mean the muxer left the field unset.
func (s *ContainerSource) mvhdTime(raw uint64) (time.Time, bool) {
	if raw == 0 {
		return time.Time{}, false
	}
	unix := int64(raw) - mvhdEpochOffset
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0).In(s.loc), true
}
