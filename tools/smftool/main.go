package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/steinarvk/midifile"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "smftool"})

var config struct {
	logLevel string
	verbose  bool
	maxSize  int64
}

var rootCmd = &cobra.Command{
	Use:           "smftool",
	Short:         "Inspect, convert and check Standard MIDI Files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := config.logLevel
		if config.verbose {
			level = "debug"
		}
		if err := midifile.SetLogLevel(level); err != nil {
			return err
		}
		if config.verbose {
			logger.SetLevel(log.DebugLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.logLevel, "log-level", "warn",
		"log level of the decoder (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&config.verbose, "verbose", "v", false,
		"very detailed logging; shorthand for --log-level=debug")
	rootCmd.PersistentFlags().Int64Var(&config.maxSize, "max-size", midifile.DefaultMaxFileSize,
		"largest input file accepted, in bytes")

	rootCmd.AddCommand(scanCmd, dumpCmd, roundtripCmd, toJSONCmd, fromJSONCmd, verifyCmd)
}

func readDocument(path string) (*midifile.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return midifile.ReadFrom(f, config.maxSize)
}

func writeDocument(path string, doc *midifile.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("failed", "err", err)
	}
}
