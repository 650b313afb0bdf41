package midifile

import (
	"sort"

	"github.com/pkg/errors"
)

// Add inserts e after every event at or before its ticks, keeping the track
// ordered.
func (t *Track) Add(e Event) {
	i := sort.Search(len(t.Events), func(i int) bool {
		return t.Events[i].Time() > e.Time()
	})
	t.Events = append(t.Events, nil)
	copy(t.Events[i+1:], t.Events[i:])
	t.Events[i] = e
}

func (t *Track) Delete(i int) error {
	if i < 0 || i >= len(t.Events) {
		return errors.Wrapf(ErrIndexOutOfRange, "delete #%d of %d event(s)", i, len(t.Events))
	}
	t.Events = append(t.Events[:i], t.Events[i+1:]...)
	return nil
}

func sounds(n Note, ticks uint32) bool {
	return n.Ticks <= ticks && ticks < n.Ticks+n.Duration
}

// NoteAt finds the first note with the given number sounding at ticks.
func (t *Track) NoteAt(ticks uint32, number uint8) (int, bool) {
	for i, e := range t.Events {
		if n, ok := e.(Note); ok && n.Number == number && sounds(n, ticks) {
			return i, true
		}
	}
	return 0, false
}

// Transpose shifts the notes starting in [from, to) by semitones, clamping
// to the MIDI note range, and returns how many notes it changed.
func (t *Track) Transpose(from, to uint32, semitones int) int {
	changed := 0
	for i, e := range t.Events {
		n, ok := e.(Note)
		if !ok || n.Ticks < from || n.Ticks >= to {
			continue
		}

		number := int(n.Number) + semitones
		switch {
		case number < 0:
			number = 0
		case number > 127:
			number = 127
		}
		if uint8(number) == n.Number {
			continue
		}

		n.Number = uint8(number)
		t.Events[i] = n
		changed++
	}
	return changed
}

// Bend adds a pitch wheel event.
func (t *Track) Bend(ticks uint32, channel uint8, value uint16) error {
	e := PitchWheel{Ticks: ticks, Channel: channel, Value: value}
	if err := ValidateEvent(e); err != nil {
		return err
	}
	t.Add(e)
	return nil
}

// LowestOctave returns the octave (number/12) of the lowest note overlapping
// [from, to], or 10 when there is none.
func (t *Track) LowestOctave(from, to uint32) int {
	lowest := 128
	for _, e := range t.Events {
		n, ok := e.(Note)
		if !ok {
			continue
		}
		if n.Ticks+n.Duration < from {
			continue
		}
		if n.Ticks > to {
			break
		}
		if int(n.Number) < lowest {
			lowest = int(n.Number)
		}
	}
	return lowest / 12
}
