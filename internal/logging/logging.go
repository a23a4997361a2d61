// Package logging configures the walletdeck logger.
//
// Two sinks: a zerolog ConsoleWriter on stderr for the terminal (warnings
// by default, debug with --verbose), and a JSON file sink rotated by
// lumberjack so long-lived workspaces don't accumulate an unbounded
// launcher log. Child process output is never routed through the logger —
// the spawned components own the terminal.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLogFile is the log location used when the config file does not
// override it.
const DefaultLogFile = "walletdeck.log"

// New builds the launcher logger.
//
// verbose lowers the console threshold from warn to debug. logFile may be
// empty to use DefaultLogFile; the file sink always records at debug
// level so a failed launch can be diagnosed after the fact without
// re-running with --verbose.
func New(verbose bool, logFile string) zerolog.Logger {
	if logFile == "" {
		logFile = DefaultLogFile
	}

	consoleLevel := zerolog.WarnLevel
	if verbose {
		consoleLevel = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	fileSink := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	}

	sinks := zerolog.MultiLevelWriter(
		levelWriter{Writer: console, min: consoleLevel},
		fileSink,
	)

	return zerolog.New(sinks).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// levelWriter filters a sink by level so the console threshold can differ
// from the file sink's.
type levelWriter struct {
	io.Writer
	min zerolog.Level
}

// WriteLevel implements zerolog.LevelWriter.
func (w levelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < w.min {
		return len(p), nil
	}
	return w.Writer.Write(p)
}
