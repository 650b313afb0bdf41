package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var scanFlags struct {
	path        string
	logSuccess  bool
	showHeaders bool
	showFiles   bool
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Decode every .mid file under a path and report the success rate",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanFlags.path, "path", "", "MIDI file scan path (dir or file)")
	scanCmd.Flags().BoolVar(&scanFlags.logSuccess, "log-success", false, "log individual parsing successes")
	scanCmd.Flags().BoolVar(&scanFlags.showHeaders, "show-headers", false, "log resolution and track count of files")
	scanCmd.Flags().BoolVar(&scanFlags.showFiles, "show-files", false, "log contents of tracks")
	scanCmd.MarkFlagRequired("path")
}

func runScan(cmd *cobra.Command, args []string) error {
	var successes, failures int64
	var successSize, totalSize int64

	onEachFile := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".mid") {
			return nil
		}

		totalSize += info.Size()

		doc, err := readDocument(path)
		if err != nil {
			logger.Error("parsing failed", "path", path, "err", err)
			failures++
			return nil
		}

		if scanFlags.logSuccess {
			logger.Info("parsing ok", "path", path, "doc", doc)
		}
		if scanFlags.showHeaders {
			logger.Info("header", "path", path, "tracks", len(doc.Tracks), "ticks_per_quarter", doc.TicksPerQuarter)
		}
		if scanFlags.showFiles {
			for i, track := range doc.Tracks {
				for j, event := range track.Events {
					logger.Infof("trk % 2d evt % 8d %v", i, j, event)
				}
			}
		}

		successes++
		successSize += info.Size()
		return nil
	}

	t0 := time.Now()
	if err := filepath.Walk(scanFlags.path, onEachFile); err != nil {
		return errors.Wrap(err, "scanning failed")
	}
	elapsed := time.Since(t0)
	secs := elapsed.Seconds()

	total := successes + failures
	var pct float64
	if total > 0 {
		pct = 100 * float64(successes) / float64(total)
	}

	logger.Infof("%d/%d file(s) parsed successfully", successes, total)
	logger.Infof("%d files of a total of %d bytes parsed successfully", successes, successSize)
	logger.Infof("Success rate: %.2f%%", pct)
	logger.Infof("Time taken: %v", elapsed)
	if secs > 0 {
		logger.Infof("Successful bytes parsed per second: %v", float64(successSize)/secs)
		logger.Infof("Total bytes parsed per second: %v", float64(totalSize)/secs)
	}

	if failures > 0 {
		return errors.Errorf("%d failure(s) encountered", failures)
	}
	return nil
}
