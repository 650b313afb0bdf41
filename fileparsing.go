package midifile

import (
	"io"

	"github.com/pkg/errors"

	"github.com/steinarvk/midifile/contextreader"
	"github.com/steinarvk/midifile/limitreader"
)

// DecodeBytes decodes a complete Standard MIDI File.
func DecodeBytes(buf []byte) (*Document, error) {
	chunks, err := SplitChunks(buf)
	if err != nil {
		return nil, err
	}

	hdr, err := ParseHeader(chunks[0])
	if err != nil {
		return nil, errors.Wrap(err, "error parsing header")
	}

	if int(hdr.NumberOfTracks) != len(chunks)-1 {
		Logger.Debug("header track count disagrees with file", "declared", hdr.NumberOfTracks, "found", len(chunks)-1)
	}

	rv := &Document{TicksPerQuarter: hdr.TicksPerQuarter}
	for _, chunk := range chunks[1:] {
		rv.Tracks = append(rv.Tracks, TrackFromDeltaMsgs(ParseTrackChunk(chunk)))
	}

	return rv, nil
}

// ReadFrom reads and decodes a file of at most maxSize bytes.
func ReadFrom(r io.Reader, maxSize int64) (*Document, error) {
	ctxR := contextreader.New(limitreader.New(r, maxSize))

	data, err := io.ReadAll(ctxR)
	if err != nil {
		return nil, ctxR.WrapError(err)
	}

	return DecodeBytes(data)
}
