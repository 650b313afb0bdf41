package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/steinarvk/midifile"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip IN OUT",
	Short: "Decode a MIDI file and encode it again",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		if err := writeDocument(args[1], doc); err != nil {
			return err
		}
		logger.Info("rewrote", "in", args[0], "out", args[1], "tracks", len(doc.Tracks))
		return nil
	},
}

var toJSONCmd = &cobra.Command{
	Use:   "tojson FILE",
	Short: "Print the per-track delta-time/message records of a MIDI file as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}

		records, err := midifile.EncodeMessages(doc)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	},
}

var fromJSONCmd = &cobra.Command{
	Use:   "fromjson JSON OUT",
	Short: "Write a MIDI file from per-track JSON records",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		var records []midifile.TrackRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return errors.Wrapf(err, "error parsing %q", args[0])
		}

		doc, err := midifile.DecodeMessages(records)
		var partial *midifile.PartialError
		switch {
		case errors.As(err, &partial):
			logger.Warn("some tracks were replaced by empty ones", "err", err)
		case err != nil:
			return err
		}

		return writeDocument(args[1], doc)
	},
}
