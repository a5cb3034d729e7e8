// Package logging configures kiln's zerolog loggers. Console output goes to
// stderr; every run is also appended to a log file under the XDG state
// directory so failed generations can be inspected afterwards.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogFile overrides the log file location
const EnvLogFile = "KILN_LOG_FILE"

// Options controls Setup
type Options struct {
	// Verbosity is the count of -v flags
	Verbosity int
	// Console receives human readable output; nil means stderr
	Console io.Writer
	// NoColor disables ANSI colors on the console
	NoColor bool
	// File is the log file path; empty means LogFilePath()
	File string
}

var (
	fileMu sync.Mutex
	file   *os.File
)

// SetupLogger configures the global logger for the given verbosity, logging
// to stderr and to the default log file
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity, NoColor: os.Getenv("NO_COLOR") != ""})
}

// Setup replaces the global logger. A log file opened by a previous call is
// closed. When the log file cannot be opened kiln logs to the console only.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(Level(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}}

	path := opts.File
	if path == "" {
		path = LogFilePath()
	}
	f, fileErr := openLogFile(path)
	swapFile(f)
	if f != nil {
		writers = append(writers, f)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Failed to create log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", path).Msg("Logger initialized")
}

// Level maps a -v count to a zerolog level: warn, info, debug, then trace
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogFilePath returns $KILN_LOG_FILE or $XDG_STATE_HOME/kiln/kiln.log
func LogFilePath() string {
	if path := os.Getenv(EnvLogFile); path != "" {
		return path
	}
	return filepath.Join(xdg.StateHome, "kiln", "kiln.log")
}

// Close closes the current log file, if any
func Close() error {
	fileMu.Lock()
	defer fileMu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func swapFile(f *os.File) {
	fileMu.Lock()
	defer fileMu.Unlock()
	if file != nil {
		_ = file.Close()
	}
	file = f
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion with the elapsed time
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
