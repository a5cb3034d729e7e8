// pkg/logging/logging_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: temp directories, environment
// PURPOSE: Test logger setup, levels and the log file

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetupLogger_SetsGlobalLevel(t *testing.T) {
	t.Setenv(EnvLogFile, filepath.Join(t.TempDir(), "kiln.log"))
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer func() { _ = Close() }()

	SetupLogger(2)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetup_WritesConsoleAndFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "kiln.log")
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var console bytes.Buffer
	Setup(Options{Verbosity: 1, Console: &console, NoColor: true, File: logFile})
	log.Info().Msg("hello from the test")
	log.Debug().Msg("below the level")
	require.NoError(t, Close())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
	assert.NotContains(t, string(data), "below the level")
	assert.Contains(t, console.String(), "hello from the test")
}

func TestSetup_ReplacesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer func() { _ = Close() }()

	var console bytes.Buffer
	Setup(Options{Verbosity: 1, Console: &console, File: filepath.Join(dir, "first.log")})
	Setup(Options{Verbosity: 1, Console: &console, File: filepath.Join(dir, "second.log")})
	log.Info().Msg("second only")
	require.NoError(t, Close())

	first, err := os.ReadFile(filepath.Join(dir, "first.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(first), "second only")

	second, err := os.ReadFile(filepath.Join(dir, "second.log"))
	require.NoError(t, err)
	assert.Contains(t, string(second), "second only")
}

func TestSetup_UnwritableFileFallsBackToConsole(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var console bytes.Buffer
	Setup(Options{Verbosity: 0, Console: &console, NoColor: true, File: filepath.Join(blocker, "kiln.log")})

	assert.Contains(t, console.String(), "Failed to create log file")
}

func TestLogFilePath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvLogFile, "/tmp/custom/kiln.log")
		assert.Equal(t, "/tmp/custom/kiln.log", LogFilePath())
	})

	t.Run("xdg state default", func(t *testing.T) {
		t.Setenv(EnvLogFile, "")
		got := LogFilePath()
		assert.Equal(t, "kiln.log", filepath.Base(got))
		assert.Equal(t, "kiln", filepath.Base(filepath.Dir(got)))
	})
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("answers")
	logger.Info().Msg("resolved")

	assert.Contains(t, buf.String(), `"component":"answers"`)
	assert.Contains(t, buf.String(), "resolved")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "materialize")
	done()

	output := buf.String()
	assert.Contains(t, output, "Operation started")
	assert.Contains(t, output, "Operation completed")
	assert.Contains(t, output, "duration")
}
