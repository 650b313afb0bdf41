package midifile

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

var (
	// Some players ignore the first delta-time of a track, so every track
	// starts with an empty text event.
	emptyTextEvent = []byte{0, statusMeta, metaText, 0}
	endOfTrack     = []byte{1, statusMeta, metaEndOfTrack, 0}
)

func encodeHeader(numTracks int, ticksPerQuarter uint16) ([]byte, error) {
	if numTracks > 0xFFFF {
		return nil, errors.Errorf("too many tracks (%d), limited to %d", numTracks, 0xFFFF)
	}
	if ticksPerQuarter == 0 || ticksPerQuarter > 0x7FFF {
		return nil, errors.Wrapf(ErrUnsupportedDivision, "ticks per quarter %d", ticksPerQuarter)
	}

	buf := bytes.NewBuffer(nil)
	buf.Write(headerMagic)
	buf.Write(UnsignedToBigEndian(6, 4))
	buf.Write(UnsignedToBigEndian(1, 2))
	buf.Write(UnsignedToBigEndian(uint32(numTracks), 2))
	buf.Write(UnsignedToBigEndian(uint32(ticksPerQuarter), 2))
	return buf.Bytes(), nil
}

func encodeTrackChunk(content []byte) []byte {
	if !bytes.HasPrefix(content, emptyTextEvent) {
		content = append(append([]byte{}, emptyTextEvent...), content...)
	}
	content = append(content, endOfTrack...)

	buf := bytes.NewBuffer(nil)
	buf.Write(trackMagic)
	buf.Write(UnsignedToBigEndian(uint32(len(content)), 4))
	buf.Write(content)
	return buf.Bytes()
}

// EncodeBytes encodes the document as a format 1 Standard MIDI File.
func EncodeBytes(doc *Document) ([]byte, error) {
	data, err := encodeHeader(len(doc.Tracks), doc.TicksPerQuarter)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(nil)
	buf.Write(data)

	for i, trk := range doc.Tracks {
		content, err := trk.Bytes()
		if err != nil {
			return nil, errors.Wrapf(err, "error encoding track #%d", i)
		}
		buf.Write(encodeTrackChunk(content))
	}

	return buf.Bytes(), nil
}

func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := EncodeBytes(d)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
