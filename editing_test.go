package midifile

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestTrackAdd(t *testing.T) {
	trk := &Track{}
	trk.Add(Control{Ticks: 20, Number: 1})
	trk.Add(Control{Ticks: 0, Number: 2})
	trk.Add(Control{Ticks: 10, Number: 3})
	trk.Add(Control{Ticks: 10, Number: 4})
	trk.Add(Control{Ticks: 30, Number: 5})

	want := []Event{
		Control{Ticks: 0, Number: 2},
		Control{Ticks: 10, Number: 3},
		Control{Ticks: 10, Number: 4},
		Control{Ticks: 20, Number: 1},
		Control{Ticks: 30, Number: 5},
	}
	if !reflect.DeepEqual(trk.Events, want) {
		t.Errorf("Add(...) = %v want %v", trk.Events, want)
	}
}

func TestTrackDelete(t *testing.T) {
	trk := &Track{Events: []Event{
		Control{Ticks: 0, Number: 1},
		Control{Ticks: 5, Number: 2},
		Control{Ticks: 9, Number: 3},
	}}

	if err := trk.Delete(1); err != nil {
		t.Fatalf("Delete(1) = err: %v", err)
	}

	want := []Event{
		Control{Ticks: 0, Number: 1},
		Control{Ticks: 9, Number: 3},
	}
	if !reflect.DeepEqual(trk.Events, want) {
		t.Errorf("Delete(1) = %v want %v", trk.Events, want)
	}

	for _, i := range []int{-1, 2} {
		if err := trk.Delete(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Delete(%d) = err: %v want %v", i, err, ErrIndexOutOfRange)
		}
	}
}

func TestTrackNoteAt(t *testing.T) {
	trk := &Track{Events: []Event{
		Tempo{Ticks: 0, MicrosecondsPerQuarter: 500000},
		Note{Ticks: 0, Duration: 100, Number: 60, VelocityOn: 100, VelocityOff: 64},
		Note{Ticks: 50, Duration: 100, Number: 60, VelocityOn: 100, VelocityOff: 64},
	}}

	testcases := []struct {
		ticks   uint32
		number  uint8
		wantIdx int
		wantOK  bool
	}{
		{0, 60, 1, true},
		{99, 60, 1, true},
		{100, 60, 2, true},
		{150, 60, 0, false},
		{50, 61, 0, false},
	}
	n := len(testcases)

	for i, testcase := range testcases {
		idx, ok := trk.NoteAt(testcase.ticks, testcase.number)
		if idx != testcase.wantIdx || ok != testcase.wantOK {
			t.Errorf("[%d/%d] NoteAt(%d, %d) = %d, %v want %d, %v", i+1, n, testcase.ticks, testcase.number, idx, ok, testcase.wantIdx, testcase.wantOK)
		}
	}
}

func TestTrackTranspose(t *testing.T) {
	trk := &Track{Events: []Event{
		Note{Ticks: 0, Duration: 10, Number: 60, VelocityOn: 100},
		Control{Ticks: 50, Number: 7, Value: 100},
		Note{Ticks: 100, Duration: 10, Number: 62, VelocityOn: 100},
		Note{Ticks: 200, Duration: 10, Number: 126, VelocityOn: 100},
	}}

	if got := trk.Transpose(0, 200, 5); got != 2 {
		t.Errorf("Transpose(0, 200, 5) = %d want 2", got)
	}
	if got := trk.Transpose(200, 300, 5); got != 1 {
		t.Errorf("Transpose(200, 300, 5) = %d want 1", got)
	}
	if got := trk.Transpose(200, 300, 5); got != 0 {
		t.Errorf("Transpose(200, 300, 5) at the top of the range = %d want 0", got)
	}
	if got := trk.Transpose(0, 1, -100); got != 1 {
		t.Errorf("Transpose(0, 1, -100) = %d want 1", got)
	}

	var numbers []uint8
	for _, e := range trk.Events {
		if n, ok := e.(Note); ok {
			numbers = append(numbers, n.Number)
		}
	}
	if want := []uint8{0, 67, 127}; !reflect.DeepEqual(numbers, want) {
		t.Errorf("note numbers after transposing = %v want %v", numbers, want)
	}
}

func TestTrackBend(t *testing.T) {
	trk := &Track{Events: []Event{
		Note{Ticks: 0, Duration: 100, Number: 60, VelocityOn: 100},
	}}

	if err := trk.Bend(10, 0, 20000); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("Bend(10, 0, 20000) = err: %v want %v", err, ErrInvalidEvent)
	}

	if err := trk.Bend(10, 0, PitchWheelCenter+100); err != nil {
		t.Fatalf("Bend(10, 0, %d) = err: %v", PitchWheelCenter+100, err)
	}

	want := PitchWheel{Ticks: 10, Channel: 0, Value: PitchWheelCenter + 100}
	if len(trk.Events) != 2 || trk.Events[1] != Event(want) {
		t.Errorf("Bend(...) = %v want second event %v", trk.Events, want)
	}
}

func TestTrackLowestOctave(t *testing.T) {
	trk := &Track{Events: []Event{
		Note{Ticks: 0, Duration: 100, Number: 60, VelocityOn: 100},
		Note{Ticks: 200, Duration: 100, Number: 40, VelocityOn: 100},
	}}

	testcases := []struct {
		from, to uint32
		want     int
	}{
		{0, 50, 5},
		{0, 300, 3},
		{250, 400, 3},
		{400, 500, 10},
	}
	n := len(testcases)

	for i, testcase := range testcases {
		if got := trk.LowestOctave(testcase.from, testcase.to); got != testcase.want {
			t.Errorf("[%d/%d] LowestOctave(%d, %d) = %d want %d", i+1, n, testcase.from, testcase.to, got, testcase.want)
		}
	}

	if got := (&Track{}).LowestOctave(0, 100); got != 10 {
		t.Errorf("LowestOctave on an empty track = %d want 10", got)
	}
}
