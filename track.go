package midifile

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

const defaultVelocityOff = 0x40

// Track is an ordered-by-ticks list of events.
type Track struct {
	Events []Event
}

// hasStatusInData reports whether a channel message carries a data byte with
// the high bit set. Such a byte cannot be represented by the event model.
func hasStatusInData(msg []byte) bool {
	if len(msg) == 0 || msg[0] >= 0xF0 {
		return false
	}
	for _, b := range msg[1:] {
		if b&0x80 != 0 {
			return true
		}
	}
	return false
}

func isNoteEnd(msg []byte, number byte) bool {
	if len(msg) < 3 || msg[1] != number || hasStatusInData(msg) {
		return false
	}
	switch msg[0] >> 4 {
	case 0x8:
		return true
	case 0x9:
		return msg[2] == 0
	}
	return false
}

// TrackFromDeltaMsgs interprets a parsed track.
//
// A Note-On is closed by the next Note-Off (or zero-velocity Note-On) with
// the same note number on any channel; one that is never closed, or closed
// at the same tick, is dropped.
// Meta events other than tempo, time signature and key signature are
// dropped, as are signatures outside their valid range and channel messages
// with a data byte above 127.
func TrackFromDeltaMsgs(msgs []DeltaMsg) *Track {
	rv := &Track{}

	var ticks uint32
	for i, pair := range msgs {
		ticks += pair.Delta
		msg := pair.Msg
		if len(msg) == 0 {
			continue
		}

		if hasStatusInData(msg) {
			Logger.Debug("dropping message with data byte above 127", "ticks", ticks, "msg", pair)
			continue
		}

		status := msg[0]
		switch {
		case status>>4 == 0x9 && len(msg) >= 3 && msg[2] != 0:
			var duration uint32
			matched := false
			velocityOff := byte(defaultVelocityOff)
			for _, next := range msgs[i+1:] {
				duration += next.Delta
				if isNoteEnd(next.Msg, msg[1]) {
					matched = true
					if next.Msg[0]>>4 == 0x8 {
						velocityOff = next.Msg[2]
					}
					break
				}
			}
			if !matched {
				Logger.Debug("dropping unmatched note-on", "ticks", ticks, "msg", pair)
				continue
			}
			if duration == 0 {
				Logger.Debug("dropping zero-length note", "ticks", ticks, "msg", pair)
				continue
			}
			rv.Events = append(rv.Events, Note{
				Ticks:       ticks,
				Duration:    duration,
				Channel:     status & 0x0F,
				Number:      msg[1],
				VelocityOn:  msg[2],
				VelocityOff: velocityOff,
			})

		case status>>4 == 0xB && len(msg) >= 3:
			rv.Events = append(rv.Events, Control{
				Ticks:   ticks,
				Channel: status & 0x0F,
				Number:  msg[1],
				Value:   msg[2],
			})

		case status>>4 == 0xE && len(msg) >= 3:
			rv.Events = append(rv.Events, PitchWheel{
				Ticks:   ticks,
				Channel: status & 0x0F,
				Value:   uint16(msg[1]) | uint16(msg[2])<<7,
			})

		case status == statusMeta:
			if evt, ok := metaEvent(ticks, msg); ok {
				rv.Events = append(rv.Events, evt)
			} else {
				Logger.Debug("dropping meta event", "ticks", ticks, "type", pair.TypeName(), "msg", pair)
			}
		}
	}

	return rv
}

func metaEvent(ticks uint32, msg []byte) (Event, bool) {
	typ, data, ok := metaPayload(msg)
	if !ok {
		return nil, false
	}

	switch {
	case typ == metaTempo && len(data) >= 3:
		return Tempo{
			Ticks:                  ticks,
			MicrosecondsPerQuarter: BigEndianToUnsigned(data[:3]),
		}, true

	case typ == metaTimeSignature && len(data) >= 2 && data[1] <= 7:
		return TimeSignature{
			Ticks:       ticks,
			Numerator:   data[0],
			Denominator: 1 << data[1],
		}, true

	case typ == metaKeySignature && len(data) >= 2 && int8(data[0]) >= -7 && int8(data[0]) <= 7:
		return KeySignature{
			Ticks:  ticks,
			Sharps: int8(data[0]),
			Minor:  data[1] != 0,
		}, true
	}

	return nil, false
}

func log2(n uint8) byte {
	var rv byte
	for n > 1 {
		n >>= 1
		rv++
	}
	return rv
}

func renderEvent(e Event) ([]byte, error) {
	switch v := e.(type) {
	case Tempo:
		return append([]byte{statusMeta, metaTempo, 0x03}, UnsignedToBigEndian(v.MicrosecondsPerQuarter, 3)...), nil

	case TimeSignature:
		return []byte{statusMeta, metaTimeSignature, 0x04, v.Numerator, log2(v.Denominator), 24, 8}, nil

	case KeySignature:
		var minor byte
		if v.Minor {
			minor = 1
		}
		return []byte{statusMeta, metaKeySignature, 0x02, byte(v.Sharps), minor}, nil

	case noteOn:
		return []byte{0x90 | v.Channel, v.Number, v.Velocity}, nil

	case noteOff:
		return []byte{0x80 | v.Channel, v.Number, v.Velocity}, nil

	case Control:
		return []byte{0xB0 | v.Channel, v.Number, v.Value}, nil

	case PitchWheel:
		return []byte{0xE0 | v.Channel, byte(v.Value & 0x7F), byte(v.Value >> 7)}, nil
	}

	return nil, errors.Wrapf(ErrUnsupportedEventType, "%T", e)
}

// tieRank orders events sharing a tick: note endings come first.
func tieRank(e Event) int {
	if _, ok := e.(noteOff); ok {
		return 0
	}
	return 1
}

// primitiveEvents splits every Note into a noteOn and a noteOff and orders
// the result by ticks; at equal ticks noteOffs precede everything else.
func (t *Track) primitiveEvents() []Event {
	var evts []Event
	for _, e := range t.Events {
		if n, ok := e.(Note); ok {
			evts = append(evts,
				noteOn{Ticks: n.Ticks, Channel: n.Channel, Number: n.Number, Velocity: n.VelocityOn},
				noteOff{Ticks: n.Ticks + n.Duration, Channel: n.Channel, Number: n.Number, Velocity: n.VelocityOff},
			)
			continue
		}
		evts = append(evts, e)
	}

	sort.SliceStable(evts, func(i, j int) bool {
		ti, tj := evts[i].Time(), evts[j].Time()
		if ti != tj {
			return ti < tj
		}
		return tieRank(evts[i]) < tieRank(evts[j])
	})

	return evts
}

// DeltaMsgs renders the track into delta-time/message pairs, the inverse of
// TrackFromDeltaMsgs.
func (t *Track) DeltaMsgs() ([]DeltaMsg, error) {
	if t == nil {
		return nil, nil
	}

	for i, e := range t.Events {
		if err := ValidateEvent(e); err != nil {
			return nil, errors.Wrapf(err, "event #%d", i)
		}
	}

	evts := t.primitiveEvents()
	rv := make([]DeltaMsg, 0, len(evts))

	var ticks uint32
	for i, e := range evts {
		msg, err := renderEvent(e)
		if err != nil {
			return nil, errors.Wrapf(err, "error encoding event #%d", i)
		}
		rv = append(rv, DeltaMsg{Delta: e.Time() - ticks, Msg: msg})
		ticks = e.Time()
	}

	return rv, nil
}

// Bytes renders the track content (without chunk framing).
func (t *Track) Bytes() ([]byte, error) {
	msgs, err := t.DeltaMsgs()
	if err != nil {
		return nil, err
	}

	var rv []byte
	for _, m := range msgs {
		delta, err := EncodeVarLen(m.Delta)
		if err != nil {
			return nil, errors.Wrapf(err, "error encoding %v", m)
		}
		rv = append(rv, delta...)
		rv = append(rv, m.Msg...)
	}

	return rv, nil
}

func (t *Track) String() string {
	return fmt.Sprintf("Track(%d events)", len(t.Events))
}
