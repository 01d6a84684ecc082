// Package logger sets up the operator console logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup builds the console logger, writing to out (stdout when nil), and
// installs it as the slog default. Timestamps are dropped; the session log
// carries them.
func Setup(logLevel string, out io.Writer) *slog.Logger {
	if out == nil {
		out = os.Stdout
	}
	handlerOptions := &slog.HandlerOptions{
		Level: parseLevel(logLevel),
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return attr
		},
	}

	logger := slog.New(slog.NewTextHandler(out, handlerOptions))
	slog.SetDefault(logger)
	return logger
}

// Level returns the console level name for the verbose flag. Verbose runs
// print the per-request debug lines of the poisoners; otherwise only info
// and above reach the console.
func Level(verbose bool) string {
	if verbose {
		return slog.LevelDebug.String()
	}
	return slog.LevelInfo.String()
}

// consoleLevels accepts both slog's level names and the "warning" spelling.
var consoleLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseLevel maps a level name to its slog level. Unknown names fall back
// to info.
func parseLevel(name string) slog.Level {
	if level, ok := consoleLevels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return level
	}
	return slog.LevelInfo
}
