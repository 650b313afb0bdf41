package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/steinarvk/midifile"
	"github.com/steinarvk/midifile/limitreader"
)

var dumpFlags struct {
	raw bool
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	trackStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(8).Align(lipgloss.Right)
	kindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Width(20)
)

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "List the tracks and events of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if dumpFlags.raw {
			return dumpRaw(cmd.OutOrStdout(), args[0])
		}

		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s: %v", args[0], doc)))

		for i, trk := range doc.Tracks {
			fmt.Fprintln(out, trackStyle.Render(fmt.Sprintf("track %d: %v", i, trk)))
			for j, e := range trk.Events {
				fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top,
					indexStyle.Render(fmt.Sprint(j)), " ",
					kindStyle.Render(fmt.Sprintf("%T", e)),
					fmt.Sprint(e)))
			}
		}

		return nil
	},
}

// dumpRaw lists the messages exactly as they appear in the file, including
// those the event model does not keep.
func dumpRaw(out io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(limitreader.New(f, config.maxSize))
	if err != nil {
		return err
	}

	chunks, err := midifile.SplitChunks(data)
	if err != nil {
		return err
	}

	hdr, err := midifile.ParseHeader(chunks[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s: %v", path, hdr)))

	for i, chunk := range chunks[1:] {
		msgs := midifile.ParseTrackChunk(chunk)
		fmt.Fprintln(out, trackStyle.Render(fmt.Sprintf("track %d: %d message(s)", i, len(msgs))))
		for j, m := range msgs {
			fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top,
				indexStyle.Render(fmt.Sprint(j)), " ",
				kindStyle.Render(m.TypeName()),
				m.String()))
		}
	}

	return nil
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpFlags.raw, "raw", false, "list the delta-time/message pairs as stored in the file instead of events")
}
