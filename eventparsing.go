package midifile

import (
	"fmt"
	"strings"
)

const (
	statusMeta        = 0xFF
	statusSysex       = 0xF0
	statusSysexEscape = 0xF7

	metaText          = 0x01
	metaEndOfTrack    = 0x2F
	metaTempo         = 0x51
	metaTimeSignature = 0x58
	metaKeySignature  = 0x59
)

// DeltaMsg is one message of a track together with the delta-time that
// precedes it. Msg always starts with an explicit status byte, even when the
// file relied on running status.
type DeltaMsg struct {
	Delta uint32
	Msg   []byte
}

type midiEventSpec struct {
	name    string
	dataLen int
}

var (
	midiEventSpecs = map[byte]midiEventSpec{
		0x8: {name: "note_off", dataLen: 2},
		0x9: {name: "note_on", dataLen: 2},
		0xA: {name: "polyphonic_key_pressure", dataLen: 2},
		0xB: {name: "control_change", dataLen: 2},
		0xC: {name: "program_change", dataLen: 1},
		0xD: {name: "channel_pressure", dataLen: 1},
		0xE: {name: "pitch_wheel_change", dataLen: 2},
	}

	metaEventNames = map[byte]string{
		0x00: "sequence_number",
		0x01: "text",
		0x02: "copyright",
		0x03: "track_name",
		0x04: "instrument_name",
		0x05: "lyric",
		0x06: "marker",
		0x07: "cue",
		0x20: "channel_prefix",
		0x2f: "end_of_track",
		0x51: "tempo",
		0x54: "smpte_offset",
		0x58: "time_signature",
		0x59: "key_signature",
		0x7f: "sequencer_specific",
	}
)

func (m DeltaMsg) String() string {
	parts := make([]string, len(m.Msg))
	for i, b := range m.Msg {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return fmt.Sprintf("<%d; %s>", m.Delta, strings.Join(parts, " "))
}

// TypeName names the kind of message, e.g. "note_on" or "tempo".
func (m DeltaMsg) TypeName() string {
	if len(m.Msg) == 0 {
		return "empty"
	}

	status := m.Msg[0]
	if status == statusMeta {
		if len(m.Msg) < 2 {
			return "meta"
		}
		if name, ok := metaEventNames[m.Msg[1]]; ok {
			return name
		}
		return "unknown"
	}

	if spec, ok := midiEventSpecs[status>>4]; ok {
		return spec.name
	}
	return "system"
}

// metaPayload splits a meta message into its type and data.
func metaPayload(msg []byte) (byte, []byte, bool) {
	if len(msg) < 3 || msg[0] != statusMeta {
		return 0, nil, false
	}
	length, start := ReadVarLen(msg, 2)
	end := start + int(length)
	if end > len(msg) {
		return msg[1], msg[start:], false
	}
	return msg[1], msg[start:end], true
}

// clip returns up to n bytes of buf starting at i, never reading past its end.
func clip(buf []byte, i, n int) []byte {
	if i >= len(buf) {
		return nil
	}
	if i+n > len(buf) {
		n = len(buf) - i
	}
	return buf[i : i+n]
}

// ParseTrackChunk walks the content of an MTrk chunk (including its 8-byte
// header) into delta-time/message pairs, resolving running status.
func ParseTrackChunk(chunk []byte) []DeltaMsg {
	var rv []DeltaMsg
	var runningStatus byte

	i := trackHeaderSize
	for i < len(chunk) {
		var delta uint32
		delta, i = ReadVarLen(chunk, i)
		if i >= len(chunk) {
			Logger.Debug("track ends after delta-time", "delta", delta)
			break
		}

		status := chunk[i]
		if status&0x80 != 0 {
			if status>>4 != 0xF {
				runningStatus = status
			}
			i++
		} else if runningStatus == 0 {
			Logger.Debug("skipping data byte without running status", "byte", fmt.Sprintf("%02x", status), "offset", i)
			i++
			continue
		} else {
			status = runningStatus
		}

		msg := []byte{status}

		switch {
		case status == statusMeta:
			if i >= len(chunk) {
				break
			}
			length, start := ReadVarLen(chunk, i+1)
			header := clip(chunk, i, start-i)
			data := clip(chunk, start, int(length))
			msg = append(msg, header...)
			msg = append(msg, data...)
			i = start + len(data)

		case status == statusSysex || status == statusSysexEscape:
			length, start := ReadVarLen(chunk, i)
			skipped := clip(chunk, start, int(length))
			Logger.Debug("skipping sysex payload", "status", fmt.Sprintf("%02x", status), "length", len(skipped))
			i = start + len(skipped)

		case status>>4 == 0xF:
			// Other system messages carry no modeled parameters.

		default:
			spec := midiEventSpecs[status>>4]
			data := clip(chunk, i, spec.dataLen)
			msg = append(msg, data...)
			i += len(data)
		}

		dm := DeltaMsg{Delta: delta, Msg: msg}
		Logger.Debug("parsed", "msg", dm)
		rv = append(rv, dm)
	}

	return rv
}
