package main

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tsawler/papertab"
)

// Rotation limits of the --log-file writer
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// newLogger builds a text logger at the given level. With a file name the
// output goes to a size-rotated file; otherwise to stderr. The returned
// closer is nil when there is nothing to close.
func newLogger(level, file string, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q", level)
	}

	var w io.Writer = stderr
	var closer io.Closer
	if file != "" {
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		}
		w, closer = rotating, rotating
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), closer, nil
}

// logWarnings reports extraction warnings at warn level
func logWarnings(logger *slog.Logger, warnings []papertab.Warning) {
	for _, w := range warnings {
		attrs := []any{"kind", string(w.Kind)}
		if w.Source != "" {
			attrs = append(attrs, "source", w.Source)
		}
		if w.Page > 0 {
			attrs = append(attrs, "page", w.Page)
		}
		logger.Warn(w.Message, attrs...)
	}
}
