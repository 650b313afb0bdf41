package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/steinarvk/midifile"
)

func sampleDocument() *midifile.Document {
	sw := midifile.NewSimpleWriter(96)
	sw.SetTempo(500000)
	for i := 0; i < 4; i++ {
		sw.Play([]int{60 + i}, 100, 48)
		sw.TimeDelta(48)
	}
	doc, err := sw.Document()
	if err != nil {
		panic(err)
	}
	return doc
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("smftool %s = err: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestDump(t *testing.T) {
	dumpFlags.raw = false
	path := filepath.Join(t.TempDir(), "in.mid")
	if err := writeDocument(path, sampleDocument()); err != nil {
		t.Fatalf("writeDocument(%q) = err: %v", path, err)
	}

	if out := run(t, "dump", path); !strings.Contains(out, "Tempo 500000us") {
		t.Errorf("smftool dump = %q; want the tempo event listed", out)
	}

	out := run(t, "dump", "--raw", path)
	for _, want := range []string{"note_off", "text", "end_of_track"} {
		if !strings.Contains(out, want) {
			t.Errorf("smftool dump --raw = %q; want %s messages listed", out, want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.mid")
	jsonPath := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.mid")

	want := sampleDocument()
	if err := writeDocument(in, want); err != nil {
		t.Fatalf("writeDocument(%q) = err: %v", in, err)
	}

	js := run(t, "tojson", in)
	if err := writeFile(jsonPath, js); err != nil {
		t.Fatalf("writeFile(%q) = err: %v", jsonPath, err)
	}

	run(t, "fromjson", jsonPath, out)

	got, err := readDocument(out)
	if err != nil {
		t.Fatalf("readDocument(%q) = err: %v", out, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fromjson(tojson(doc)) = %v want %v", got.Tracks, want.Tracks)
	}
}

func TestRoundtripAndVerify(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.mid")
	out := filepath.Join(dir, "out.mid")

	if err := writeDocument(in, sampleDocument()); err != nil {
		t.Fatalf("writeDocument(%q) = err: %v", in, err)
	}

	run(t, "roundtrip", in, out)
	run(t, "verify", out)
	run(t, "scan", "--path", dir)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
