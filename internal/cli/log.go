// Package cli implements the figmajson command-line interface.
//
// The commands work on scene files (JSON snapshots of an in-memory design
// document) and on serialized documents produced by a dump.
//
// # Commands
//
//   - dump: Serialize the selection of a scene file into a document
//   - insert: Recreate a document inside a scene file
//   - paste: Insert the newest clipboard entry
//   - tree: Draw the layer tree of a document as DOT or SVG
//   - defaults: Print the default layer of a node kind
//   - clipboard: List, clear or locate the copy history
//   - config: Show or initialize the config file
//   - serve: Answer UI messages over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Inserted 3 layers (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
