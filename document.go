package midifile

import "fmt"

const (
	// DefaultTicksPerQuarter is the resolution of documents created from
	// scratch.
	DefaultTicksPerQuarter = 360

	DefaultMaxFileSize = 16 << 20
)

// Document is a decoded file: a resolution shared by every track and the
// tracks themselves. Track 0 conventionally holds tempo and signature
// events.
type Document struct {
	TicksPerQuarter uint16
	Tracks          []*Track
}

// NewDocument creates a document of numTracks empty tracks.
func NewDocument(ticksPerQuarter uint16, numTracks int) *Document {
	rv := &Document{TicksPerQuarter: ticksPerQuarter}
	for i := 0; i < numTracks; i++ {
		rv.Tracks = append(rv.Tracks, &Track{})
	}
	return rv
}

func (d *Document) String() string {
	return fmt.Sprintf("Document(ticks_per_quarter=%d, %d tracks)", d.TicksPerQuarter, len(d.Tracks))
}
