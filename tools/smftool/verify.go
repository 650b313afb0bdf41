package main

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/steinarvk/midifile"
	"github.com/steinarvk/midifile/gomidiconv"
)

var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Check that a re-encoded file reads back the same through gomidi",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		return verifyDocument(doc)
	},
}

func countNotes(doc *midifile.Document) int {
	n := 0
	for _, trk := range doc.Tracks {
		for _, e := range trk.Events {
			if _, ok := e.(midifile.Note); ok {
				n++
			}
		}
	}
	return n
}

func verifyDocument(doc *midifile.Document) error {
	data, err := midifile.EncodeBytes(doc)
	if err != nil {
		return errors.Wrap(err, "error encoding")
	}

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "gomidi cannot read the encoded file")
	}

	if want, got := countNotes(doc), gomidiconv.CountNoteStarts(s); want != got {
		return errors.Errorf("gomidi sees %d note start(s), document has %d", got, want)
	}

	back, err := gomidiconv.FromSMF(s)
	if err != nil {
		return err
	}

	if len(back.Tracks) != len(doc.Tracks) {
		return errors.Errorf("gomidi sees %d track(s), document has %d", len(back.Tracks), len(doc.Tracks))
	}
	for i := range doc.Tracks {
		if got, want := len(back.Tracks[i].Events), len(doc.Tracks[i].Events); got != want {
			return errors.Errorf("track %d: %d event(s) after re-reading, %d before", i, got, want)
		}
	}

	logger.Info("verified", "tracks", len(doc.Tracks), "notes", countNotes(doc), "bytes", len(data))
	return nil
}
