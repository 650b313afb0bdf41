package midifile

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

const (
	headerChunkSize = 14
	trackHeaderSize = 8
)

var (
	headerMagic = []byte("MThd")
	trackMagic  = []byte("MTrk")
)

type Header struct {
	Format          uint16
	NumberOfTracks  uint16
	TicksPerQuarter uint16
}

func (h Header) String() string {
	return fmt.Sprintf("format=%d tracks=%d ticks_per_quarter=%d", h.Format, h.NumberOfTracks, h.TicksPerQuarter)
}

// BigEndianToUnsigned decodes an unsigned big-endian integer of up to four
// bytes.
func BigEndianToUnsigned(b []byte) uint32 {
	var rv uint32
	for _, x := range b {
		rv = rv<<8 | uint32(x)
	}
	return rv
}

// UnsignedToBigEndian encodes the low n bytes of v, most significant first.
func UnsignedToBigEndian(v uint32, n int) []byte {
	rv := make([]byte, n)
	for i := 0; i < n; i++ {
		rv[i] = byte(v >> (uint(n-1-i) * 8))
	}
	return rv
}

// SplitChunks cuts a file into its header chunk followed by its track
// chunks. Each track chunk keeps its 8-byte header.
func SplitChunks(buf []byte) ([][]byte, error) {
	if len(buf) < headerChunkSize {
		return nil, errors.Wrapf(ErrBadHeader, "file is %d byte(s), header needs %d", len(buf), headerChunkSize)
	}

	if !bytes.Equal(buf[:len(headerMagic)], headerMagic) {
		return nil, errors.Wrapf(ErrBadHeader, "expected %q, read %q", headerMagic, buf[:len(headerMagic)])
	}

	chunks := [][]byte{buf[:headerChunkSize]}

	for i := headerChunkSize; i < len(buf); {
		if len(buf)-i < trackHeaderSize {
			return nil, errors.Wrapf(ErrTruncatedChunk, "%d trailing byte(s) at offset %d", len(buf)-i, i)
		}

		length := int64(BigEndianToUnsigned(buf[i+4 : i+8]))
		if length > int64(len(buf)-i-trackHeaderSize) {
			return nil, errors.Wrapf(ErrTruncatedChunk, "chunk at offset %d declares %d byte(s), %d remain", i, length, len(buf)-i-trackHeaderSize)
		}
		end := i + trackHeaderSize + int(length)

		if bytes.Equal(buf[i:i+4], trackMagic) {
			chunks = append(chunks, buf[i:end])
		} else {
			Logger.Debug("skipping unknown chunk", "type", fmt.Sprintf("%q", buf[i:i+4]), "offset", i, "length", length)
		}

		i = end
	}

	return chunks, nil
}

// ParseHeader reads the fields of a 14-byte MThd chunk.
func ParseHeader(chunk []byte) (Header, error) {
	if len(chunk) < headerChunkSize || !bytes.Equal(chunk[:len(headerMagic)], headerMagic) {
		return Header{}, errors.Wrapf(ErrBadHeader, "% 02x", chunk)
	}

	rv := Header{
		Format:          uint16(BigEndianToUnsigned(chunk[8:10])),
		NumberOfTracks:  uint16(BigEndianToUnsigned(chunk[10:12])),
		TicksPerQuarter: uint16(BigEndianToUnsigned(chunk[12:14])),
	}

	if rv.TicksPerQuarter&0x8000 != 0 {
		return Header{}, errors.Wrapf(ErrUnsupportedDivision, "SMPTE division %04x", rv.TicksPerQuarter)
	}

	return rv, nil
}
