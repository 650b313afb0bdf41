package midifile

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// PitchWheelCenter is the PitchWheel value of an unbent note.
const PitchWheelCenter = 8192

// Event is one of Note, Control, PitchWheel, Tempo, TimeSignature or
// KeySignature. The set is closed.
type Event interface {
	// Time is the absolute tick offset of the event from the track start.
	Time() uint32

	isEvent()
}

// Note is a Note-On/Note-Off pair merged into one event.
type Note struct {
	Ticks       uint32
	Duration    uint32
	Channel     uint8
	Number      uint8
	VelocityOn  uint8
	VelocityOff uint8
}

type Control struct {
	Ticks   uint32
	Channel uint8
	Number  uint8
	Value   uint8
}

// PitchWheel carries a 14-bit bend value; PitchWheelCenter means no bend.
type PitchWheel struct {
	Ticks   uint32
	Channel uint8
	Value   uint16
}

type Tempo struct {
	Ticks                  uint32
	MicrosecondsPerQuarter uint32
}

// TimeSignature holds the actual denominator (4 for x/4), not its log2.
type TimeSignature struct {
	Ticks       uint32
	Numerator   uint8
	Denominator uint8
}

// KeySignature counts sharps as positive and flats as negative.
type KeySignature struct {
	Ticks  uint32
	Sharps int8
	Minor  bool
}

// noteOn and noteOff exist only between splitting Notes and rendering bytes.
type noteOn struct {
	Ticks    uint32
	Channel  uint8
	Number   uint8
	Velocity uint8
}

type noteOff struct {
	Ticks    uint32
	Channel  uint8
	Number   uint8
	Velocity uint8
}

func (e Note) Time() uint32          { return e.Ticks }
func (e Control) Time() uint32       { return e.Ticks }
func (e PitchWheel) Time() uint32    { return e.Ticks }
func (e Tempo) Time() uint32         { return e.Ticks }
func (e TimeSignature) Time() uint32 { return e.Ticks }
func (e KeySignature) Time() uint32  { return e.Ticks }
func (e noteOn) Time() uint32        { return e.Ticks }
func (e noteOff) Time() uint32       { return e.Ticks }

func (Note) isEvent()          {}
func (Control) isEvent()       {}
func (PitchWheel) isEvent()    {}
func (Tempo) isEvent()         {}
func (TimeSignature) isEvent() {}
func (KeySignature) isEvent()  {}
func (noteOn) isEvent()        {}
func (noteOff) isEvent()       {}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName spells a MIDI note number, with middle C (60) as "C4".
func NoteName(number uint8) string {
	return fmt.Sprintf("%s%d", noteNames[number%12], int(number)/12-1)
}

// BeatsPerMinute converts the tempo to quarter notes per minute.
func (e Tempo) BeatsPerMinute() float64 {
	if e.MicrosecondsPerQuarter == 0 {
		return 0
	}
	return 60e6 / float64(e.MicrosecondsPerQuarter)
}

func (e Note) String() string {
	return fmt.Sprintf("@%d Note ch=%d %s(%d) dur=%d von=%d voff=%d", e.Ticks, e.Channel, NoteName(e.Number), e.Number, e.Duration, e.VelocityOn, e.VelocityOff)
}

func (e Control) String() string {
	return fmt.Sprintf("@%d Control ch=%d cc=%d v=%d", e.Ticks, e.Channel, e.Number, e.Value)
}

func (e PitchWheel) String() string {
	return fmt.Sprintf("@%d PitchWheel ch=%d v=%d (%+d)", e.Ticks, e.Channel, e.Value, int(e.Value)-PitchWheelCenter)
}

func (e Tempo) String() string {
	return fmt.Sprintf("@%d Tempo %dus q=%.0f", e.Ticks, e.MicrosecondsPerQuarter, e.BeatsPerMinute())
}

func (e TimeSignature) String() string {
	return fmt.Sprintf("@%d TimeSignature %d/%d", e.Ticks, e.Numerator, e.Denominator)
}

func (e KeySignature) String() string {
	mode := "major"
	if e.Minor {
		mode = "minor"
	}
	return fmt.Sprintf("@%d KeySignature sharps=%d %s", e.Ticks, e.Sharps, mode)
}

func (e noteOn) String() string {
	return fmt.Sprintf("@%d NoteOn ch=%d k=%02x v=%02x", e.Ticks, e.Channel, e.Number, e.Velocity)
}

func (e noteOff) String() string {
	return fmt.Sprintf("@%d NoteOff ch=%d k=%02x v=%02x", e.Ticks, e.Channel, e.Number, e.Velocity)
}

func isPowerOfTwo(n uint8) bool {
	return n != 0 && n&(n-1) == 0
}

// ValidateEvent checks that every field of e lies in the range its MIDI
// encoding can represent.
func ValidateEvent(e Event) error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Wrapf(ErrInvalidEvent, "%v: %s", e, fmt.Sprintf(format, args...))
	}

	switch v := e.(type) {
	case Note:
		switch {
		case v.Duration == 0:
			return invalid("duration must be positive")
		case uint64(v.Ticks)+uint64(v.Duration) > math.MaxUint32:
			return invalid("end tick overflows")
		case v.Channel > 15:
			return invalid("channel %d", v.Channel)
		case v.Number > 127 || v.VelocityOn > 127 || v.VelocityOff > 127:
			return invalid("data byte above 127")
		case v.VelocityOn == 0:
			return invalid("zero on-velocity would read back as a Note-Off")
		}

	case Control:
		switch {
		case v.Channel > 15:
			return invalid("channel %d", v.Channel)
		case v.Number > 127 || v.Value > 127:
			return invalid("data byte above 127")
		}

	case PitchWheel:
		switch {
		case v.Channel > 15:
			return invalid("channel %d", v.Channel)
		case v.Value > 16383:
			return invalid("value %d exceeds 14 bits", v.Value)
		}

	case Tempo:
		if v.MicrosecondsPerQuarter > 0xFFFFFF {
			return invalid("tempo exceeds 24 bits")
		}

	case TimeSignature:
		if !isPowerOfTwo(v.Denominator) {
			return invalid("denominator %d is not a power of two", v.Denominator)
		}

	case KeySignature:
		if v.Sharps < -7 || v.Sharps > 7 {
			return invalid("sharps %d outside -7..7", v.Sharps)
		}

	default:
		return errors.Wrapf(ErrUnsupportedEventType, "%T", e)
	}

	return nil
}
