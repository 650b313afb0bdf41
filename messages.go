package midifile

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// TrackRecord is one track in the unframed intermediate form: the parsed
// pairs of the track and the resolution they were written against.
type TrackRecord struct {
	DeltaMsgs       []DeltaMsg `json:"deltamsgs"`
	TicksPerQuarter int        `json:"ticks_per_quarter"`
}

type deltaMsgJSON struct {
	Delta uint32 `json:"delta"`
	Msg   []int  `json:"msg"`
}

// MarshalJSON writes the message as a list of numbers rather than base64.
func (m DeltaMsg) MarshalJSON() ([]byte, error) {
	rv := deltaMsgJSON{Delta: m.Delta, Msg: make([]int, len(m.Msg))}
	for i, b := range m.Msg {
		rv.Msg[i] = int(b)
	}
	return json.Marshal(rv)
}

func (m *DeltaMsg) UnmarshalJSON(data []byte) error {
	var raw deltaMsgJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	msg := make([]byte, len(raw.Msg))
	for i, x := range raw.Msg {
		if x < 0 || x > 0xFF {
			return errors.Errorf("message byte #%d out of range: %d", i, x)
		}
		msg[i] = byte(x)
	}

	m.Delta = raw.Delta
	m.Msg = msg
	return nil
}

// DecodeMessages builds a document from per-track records.
//
// The resolution of the document is that of the first non-empty record. A
// later non-empty record declaring a different resolution is replaced by an
// empty track; the document is still returned, together with a
// *PartialError naming the replaced tracks.
func DecodeMessages(records []TrackRecord) (*Document, error) {
	ticksPerQuarter := -1
	for _, rec := range records {
		if len(rec.DeltaMsgs) > 0 {
			ticksPerQuarter = rec.TicksPerQuarter
			break
		}
	}
	if ticksPerQuarter < 0 {
		ticksPerQuarter = DefaultTicksPerQuarter
		if len(records) > 0 && records[0].TicksPerQuarter > 0 {
			ticksPerQuarter = records[0].TicksPerQuarter
		}
	}
	if ticksPerQuarter <= 0 || ticksPerQuarter > 0x7FFF {
		return nil, errors.Wrapf(ErrUnsupportedDivision, "ticks per quarter %d", ticksPerQuarter)
	}

	rv := &Document{TicksPerQuarter: uint16(ticksPerQuarter)}
	var partial PartialError

	for i, rec := range records {
		if len(rec.DeltaMsgs) > 0 && rec.TicksPerQuarter != ticksPerQuarter {
			te := &TrackError{
				Track: i,
				Err:   errors.Wrapf(ErrInconsistentTicksPerQuarter, "track has %d, document has %d", rec.TicksPerQuarter, ticksPerQuarter),
			}
			Logger.Warn("replacing track with an empty one", "track", i, "err", te.Err)
			partial.Tracks = append(partial.Tracks, te)
			rv.Tracks = append(rv.Tracks, &Track{})
			continue
		}
		rv.Tracks = append(rv.Tracks, TrackFromDeltaMsgs(rec.DeltaMsgs))
	}

	if len(partial.Tracks) > 0 {
		return rv, &partial
	}
	return rv, nil
}

// EncodeMessages renders every track into the intermediate form. Unlike
// EncodeBytes it adds no empty text event and no End-Of-Track.
func EncodeMessages(doc *Document) ([]TrackRecord, error) {
	rv := make([]TrackRecord, 0, len(doc.Tracks))
	for i, trk := range doc.Tracks {
		msgs, err := trk.DeltaMsgs()
		if err != nil {
			return nil, errors.Wrapf(err, "error encoding track #%d", i)
		}
		if msgs == nil {
			msgs = []DeltaMsg{}
		}
		rv = append(rv, TrackRecord{
			DeltaMsgs:       msgs,
			TicksPerQuarter: int(doc.TicksPerQuarter),
		})
	}
	return rv, nil
}
