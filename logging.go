package midifile

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger receives diagnostics about lossy decoding (dropped notes, unmodeled
// meta events) and, at debug level, every parsed message.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "midifile",
	Level:  log.WarnLevel,
})

// SetLogLevel sets the level of Logger from its name ("debug", "info", ...).
func SetLogLevel(name string) error {
	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	Logger.SetLevel(level)
	return nil
}
