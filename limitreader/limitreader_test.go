package limitreader

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
)

func TestLimitReader(t *testing.T) {
	databuf := bytes.NewBuffer([]byte("helloworld"))
	f := New(databuf, 5)

	buf := make([]byte, 1000)
	n, err := f.Read(buf)
	if err != nil {
		t.Fatalf("f.Read(buf) = err: %v", err)
	}

	if n != 5 {
		t.Errorf("f.Read(buf) = %d want %d [byte(s) read]", n, 5)
	}

	if string(buf[:n]) != "hello" {
		t.Errorf("buf = %v; want initial %d byte(s) %q", buf, n, "hello")
	}

	if _, err := f.Read(buf); !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("f.Read(buf) after limit = err: %v want %v", err, ErrLimitExceeded)
	}
}

func TestLimitReaderExactFit(t *testing.T) {
	f := New(bytes.NewBuffer([]byte("hello")), 5)

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("io.ReadAll(f) = err: %v", err)
	}

	if string(data) != "hello" {
		t.Errorf("io.ReadAll(f) = %q want %q", data, "hello")
	}
}

func TestLimitReaderShortInput(t *testing.T) {
	f := New(bytes.NewBuffer([]byte("hi")), 5)

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("io.ReadAll(f) = err: %v", err)
	}

	if string(data) != "hi" {
		t.Errorf("io.ReadAll(f) = %q want %q", data, "hi")
	}
}
