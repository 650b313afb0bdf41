package midifile

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrBadHeader                   = errors.New("bad header")
	ErrTruncatedChunk              = errors.New("truncated chunk")
	ErrUnsupportedDivision         = errors.New("unsupported time division")
	ErrInconsistentTicksPerQuarter = errors.New("inconsistent ticks per quarter")
	ErrUnsupportedEventType        = errors.New("unsupported event type")
	ErrInvalidEvent                = errors.New("invalid event")
	ErrDeltaTooLarge               = errors.New("delta too large")
	ErrIndexOutOfRange             = errors.New("index out of range")
)

// TrackError is a failure confined to a single track of a document.
type TrackError struct {
	Track int
	Err   error
}

func (e *TrackError) Error() string {
	return fmt.Sprintf("track %d: %v", e.Track, e.Err)
}

func (e *TrackError) Unwrap() error {
	return e.Err
}

// PartialError is returned alongside a usable document when some tracks
// could not be decoded and were replaced by empty ones.
type PartialError struct {
	Tracks []*TrackError
}

func (e *PartialError) Error() string {
	msgs := make([]string, len(e.Tracks))
	for i, te := range e.Tracks {
		msgs[i] = te.Error()
	}
	return fmt.Sprintf("%d track(s) replaced by empty tracks: %s", len(e.Tracks), strings.Join(msgs, "; "))
}

func (e *PartialError) Unwrap() []error {
	rv := make([]error, len(e.Tracks))
	for i, te := range e.Tracks {
		rv[i] = te
	}
	return rv
}
