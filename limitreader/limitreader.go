package limitreader

import (
	"io"

	"github.com/pkg/errors"
)

// ErrLimitExceeded is returned once the underlying reader turns out to hold
// more than the permitted number of bytes.
var ErrLimitExceeded = errors.New("input exceeds size limit")

type limitReader struct {
	underlying io.Reader

	totalBytesRead int64
	readLimit      int64
}

// New returns a reader that yields at most n bytes of r. Unlike
// io.LimitReader, it fails with ErrLimitExceeded instead of reporting a
// clean EOF when r has more to give.
func New(r io.Reader, n int64) io.Reader {
	return &limitReader{
		underlying: r,
		readLimit:  n,
	}
}

func (r *limitReader) Read(buf []byte) (int, error) {
	remaining := r.readLimit - r.totalBytesRead
	if remaining <= 0 {
		var probe [1]byte
		n, err := io.ReadFull(r.underlying, probe[:])
		if n > 0 {
			return 0, errors.Wrapf(ErrLimitExceeded, "limit is %d byte(s)", r.readLimit)
		}
		if err == io.ErrUnexpectedEOF || err == nil {
			err = io.EOF
		}
		return 0, err
	}

	if int64(len(buf)) > remaining {
		buf = buf[:remaining]
	}

	n, err := r.underlying.Read(buf)
	r.totalBytesRead += int64(n)

	return n, err
}
