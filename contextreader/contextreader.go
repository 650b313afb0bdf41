package contextreader

import (
	"io"

	"github.com/pkg/errors"
)

const (
	numberOfContextBytes = 64
)

// ContextReader remembers how far it got and the last bytes it saw, so that
// a failure can be reported with its position.
type ContextReader struct {
	underlying io.Reader

	totalBytesRead int64
	lastBytesRead  []byte
}

func (r *ContextReader) Read(buf []byte) (int, error) {
	n, err := r.underlying.Read(buf)

	r.totalBytesRead += int64(n)
	if n > 0 {
		r.lastBytesRead = append(r.lastBytesRead, buf[:n]...)
	}
	if len(r.lastBytesRead) > numberOfContextBytes {
		r.lastBytesRead = append([]byte(nil), r.lastBytesRead[len(r.lastBytesRead)-numberOfContextBytes:]...)
	}

	return n, err
}

func (r *ContextReader) BytesRead() int64 {
	return r.totalBytesRead
}

// WrapError annotates err with the read position and the trailing context.
// The result still matches err under errors.Is.
func (r *ContextReader) WrapError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "after %d bytes (last: % 02x)", r.totalBytesRead, r.lastBytesRead)
}

func New(r io.Reader) *ContextReader {
	return &ContextReader{
		underlying: r,
	}
}
