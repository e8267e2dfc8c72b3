// Package logging builds the single structured logger shared by runmenu's
// commands and the catalog loader.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Prefix is attached to every log line.
const Prefix = "runmenu"

// New returns a logger writing to w at the named level. An empty level means
// warn. w defaults to os.Stderr.
func New(w io.Writer, level string) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	if level == "" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           lvl,
		ReportTimestamp: lvl <= log.DebugLevel,
	}), nil
}
