// Package logging builds the diagnostic logger used by the command line.
// Snapshot results are printed by the commands themselves; this logger
// carries debug and background (watch) output on stderr.
package logging

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// New creates a named logger writing to out at the given level.
// Unknown levels fall back to info.
func New(name, level string, out io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  lvl,
		Output: out,
	})
}
