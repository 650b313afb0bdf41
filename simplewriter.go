package midifile

import (
	"io"

	"github.com/pkg/errors"
)

// SimpleWriter builds a document by playing chords one after another. Tempo
// changes go to a conductor track, notes to a second track.
type SimpleWriter struct {
	ticksPerQuarter uint16
	cursor          uint32
	conductor       Track
	notes           Track
	err             error
}

func NewSimpleWriter(ticksPerQuarter uint16) *SimpleWriter {
	return &SimpleWriter{ticksPerQuarter: ticksPerQuarter}
}

// SetTempo records a tempo change at the cursor.
func (s *SimpleWriter) SetTempo(microsecondsPerQuarter uint32) {
	s.add(&s.conductor, Tempo{Ticks: s.cursor, MicrosecondsPerQuarter: microsecondsPerQuarter})
}

// Play sounds every key for duration ticks on channel 0 and moves the cursor
// past the chord.
func (s *SimpleWriter) Play(keys []int, velocity int, duration int) {
	if duration <= 0 {
		s.fail(errors.Wrapf(ErrInvalidEvent, "duration %d", duration))
		return
	}
	for _, key := range keys {
		if key < 0 || key > 127 || velocity <= 0 || velocity > 127 {
			s.fail(errors.Wrapf(ErrInvalidEvent, "key %d velocity %d", key, velocity))
			return
		}
		s.add(&s.notes, Note{
			Ticks:       s.cursor,
			Duration:    uint32(duration),
			Number:      uint8(key),
			VelocityOn:  uint8(velocity),
			VelocityOff: uint8(velocity),
		})
	}
	s.TimeDelta(duration)
}

// TimeDelta moves the cursor forward.
func (s *SimpleWriter) TimeDelta(duration int) {
	if duration < 0 {
		s.fail(errors.Errorf("negative time delta %d", duration))
		return
	}
	s.cursor += uint32(duration)
}

func (s *SimpleWriter) add(t *Track, e Event) {
	if err := ValidateEvent(e); err != nil {
		s.fail(err)
		return
	}
	t.Add(e)
}

func (s *SimpleWriter) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Document returns the conductor and note tracks written so far, or the
// first error encountered while writing them.
func (s *SimpleWriter) Document() (*Document, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &Document{
		TicksPerQuarter: s.ticksPerQuarter,
		Tracks: []*Track{
			{Events: append([]Event(nil), s.conductor.Events...)},
			{Events: append([]Event(nil), s.notes.Events...)},
		},
	}, nil
}

func (s *SimpleWriter) Write(w io.Writer) error {
	doc, err := s.Document()
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(w); err != nil {
		return err
	}
	return nil
}
