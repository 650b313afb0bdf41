package midifile

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestNoteName(t *testing.T) {
	testcases := []struct {
		number uint8
		want   string
	}{
		{0, "C-1"},
		{21, "A0"},
		{60, "C4"},
		{61, "C#4"},
		{127, "G9"},
	}
	n := len(testcases)

	for i, testcase := range testcases {
		if got := NoteName(testcase.number); got != testcase.want {
			t.Errorf("[%d/%d] NoteName(%d) = %q want %q", i+1, n, testcase.number, got, testcase.want)
		}
	}
}

func TestBeatsPerMinute(t *testing.T) {
	if got := (Tempo{MicrosecondsPerQuarter: 500000}).BeatsPerMinute(); got != 120 {
		t.Errorf("BeatsPerMinute(500000us) = %v want 120", got)
	}
	if got := (Tempo{}).BeatsPerMinute(); got != 0 {
		t.Errorf("BeatsPerMinute(0us) = %v want 0", got)
	}
}

func TestValidateEvent(t *testing.T) {
	testcases := []struct {
		event Event
		want  error
	}{
		{Note{Duration: 1, Channel: 15, Number: 127, VelocityOn: 1, VelocityOff: 127}, nil},
		{Note{Duration: 1, Number: 60, VelocityOn: 0}, ErrInvalidEvent},
		{Note{Duration: 1, Number: 128, VelocityOn: 100}, ErrInvalidEvent},
		{Note{Ticks: math.MaxUint32 - 10, Duration: 10, Number: 60, VelocityOn: 100}, nil},
		{Note{Ticks: math.MaxUint32 - 5, Duration: 10, Number: 60, VelocityOn: 100}, ErrInvalidEvent},
		{Control{Channel: 15, Number: 127, Value: 127}, nil},
		{Control{Channel: 16}, ErrInvalidEvent},
		{Control{Value: 128}, ErrInvalidEvent},
		{PitchWheel{Channel: 0, Value: 16383}, nil},
		{PitchWheel{Channel: 20, Value: PitchWheelCenter}, ErrInvalidEvent},
		{Tempo{MicrosecondsPerQuarter: 0xFFFFFF}, nil},
		{TimeSignature{Numerator: 7, Denominator: 128}, nil},
		{TimeSignature{Numerator: 4, Denominator: 0}, ErrInvalidEvent},
		{TimeSignature{Numerator: 4, Denominator: 6}, ErrInvalidEvent},
		{KeySignature{Sharps: -7, Minor: true}, nil},
		{KeySignature{Sharps: -8}, ErrInvalidEvent},
		{noteOn{Number: 60, Velocity: 100}, ErrUnsupportedEventType},
	}
	n := len(testcases)

	for i, testcase := range testcases {
		err := ValidateEvent(testcase.event)
		if testcase.want == nil {
			if err != nil {
				t.Errorf("[%d/%d] ValidateEvent(%v) = err: %v", i+1, n, testcase.event, err)
			}
			continue
		}
		if !errors.Is(err, testcase.want) {
			t.Errorf("[%d/%d] ValidateEvent(%v) = err: %v want %v", i+1, n, testcase.event, err, testcase.want)
		}
	}
}
