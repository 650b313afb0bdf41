package midifile

import "github.com/pkg/errors"

const (
	maxVarLenBytes = 4
	maxVarLen      = 1<<(7*maxVarLenBytes) - 1
)

// ReadVarLen reads a variable-length quantity starting at buf[offset] and
// returns it with the offset of the byte following it.
//
// Reading is permissive: it stops after four bytes even if the fourth still
// has its continuation bit set, and it stops at the end of buf.
func ReadVarLen(buf []byte, offset int) (uint32, int) {
	var rv uint32

	i := offset
	for n := 0; n < maxVarLenBytes && i < len(buf); n++ {
		b := buf[i]
		i++

		rv = rv<<7 | uint32(b&0x7f)
		if b&0x80 == 0 {
			break
		}
	}

	return rv, i
}

// EncodeVarLen encodes n as a variable-length quantity of at most four bytes.
func EncodeVarLen(n uint32) ([]byte, error) {
	if n > maxVarLen {
		return nil, errors.Wrapf(ErrDeltaTooLarge, "%d does not fit in %d byte(s)", n, maxVarLenBytes)
	}

	if n == 0 {
		return []byte{0}, nil
	}

	var rrv []byte
	for n > 0 {
		rrv = append(rrv, byte(n&0x7f))
		n >>= 7
	}

	rv := make([]byte, 0, len(rrv))
	for i := len(rrv) - 1; i >= 0; i-- {
		b := rrv[i]
		if i != 0 {
			b |= 0x80
		}
		rv = append(rv, b)
	}

	return rv, nil
}
