// Package gomidiconv converts between midifile documents and gomidi's SMF
// model, for programs that hand files to gomidi for playback or further
// processing.
package gomidiconv

import (
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/steinarvk/midifile"
)

// ToSMF renders every track of doc and copies the messages into a format 1
// SMF. Each track is closed with an End-Of-Track.
func ToSMF(doc *midifile.Document) (*smf.SMF, error) {
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(doc.TicksPerQuarter)

	for i, trk := range doc.Tracks {
		msgs, err := trk.DeltaMsgs()
		if err != nil {
			return nil, errors.Wrapf(err, "error encoding track #%d", i)
		}

		var tr smf.Track
		for _, m := range msgs {
			tr.Add(m.Delta, m.Msg)
		}
		tr.Close(0)

		if err := s.Add(tr); err != nil {
			return nil, errors.Wrapf(err, "error adding track #%d", i)
		}
	}

	return s, nil
}

// FromSMF interprets a gomidi SMF the same way DecodeBytes interprets a
// file. Only metric time formats are supported.
func FromSMF(s *smf.SMF) (*midifile.Document, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.Wrapf(midifile.ErrUnsupportedDivision, "time format %v", s.TimeFormat)
	}

	rv := &midifile.Document{TicksPerQuarter: mt.Resolution()}
	for _, tr := range s.Tracks {
		msgs := make([]midifile.DeltaMsg, 0, len(tr))
		for _, ev := range tr {
			msgs = append(msgs, midifile.DeltaMsg{
				Delta: ev.Delta,
				Msg:   append([]byte(nil), ev.Message...),
			})
		}
		rv.Tracks = append(rv.Tracks, midifile.TrackFromDeltaMsgs(msgs))
	}

	return rv, nil
}

// CountNoteStarts counts the Note-On messages with non-zero velocity in s,
// as gomidi sees them.
func CountNoteStarts(s *smf.SMF) int {
	var ch, key, vel uint8
	n := 0
	for _, tr := range s.Tracks {
		for _, ev := range tr {
			if midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
				n++
			}
		}
	}
	return n
}
