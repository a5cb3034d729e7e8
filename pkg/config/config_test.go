// pkg/config/config_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: temp directories, environment
// PURPOSE: Test configuration layering, validation and TOML output

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kiln/pkg/config"
	"github.com/arthur-debert/kiln/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, ".tmpl", cfg.TemplateSuffix)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Zero(t, cfg.Hooks.Timeout)
	assert.Equal(t, "", cfg.Source.CacheDir)
	assert.Equal(t, "git", cfg.Source.GitCommand)
	assert.Equal(t, config.ColorAuto, cfg.Output.Color)
	assert.Equal(t, 1, cfg.EffectiveWorkers())

	cfg.Workers = 0
	assert.Greater(t, cfg.EffectiveWorkers(), 0)
}

func TestLoadFile_Layers(t *testing.T) {
	path := writeConfig(t, `
workers = 4
template_suffix = ".j2"

[hooks]
timeout = "30s"
`)

	t.Run("user file overrides defaults", func(t *testing.T) {
		cfg, err := config.LoadFile(path, nil)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, ".j2", cfg.TemplateSuffix)
		assert.Equal(t, 30*time.Second, cfg.Hooks.Timeout)
		assert.Equal(t, 3, cfg.MaxAttempts)
	})

	t.Run("overrides win over user file", func(t *testing.T) {
		cfg, err := config.LoadFile(path, map[string]interface{}{
			"workers":       1,
			"hooks.timeout": "2s",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Workers)
		assert.Equal(t, 2*time.Second, cfg.Hooks.Timeout)
		assert.Equal(t, 1, cfg.EffectiveWorkers())
	})

	t.Run("missing user file is not an error", func(t *testing.T) {
		cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.toml"), nil)
		require.NoError(t, err)
		assert.Equal(t, ".tmpl", cfg.TemplateSuffix)
	})
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv(config.ConfigPathEnv, writeConfig(t, "max_attempts = 5\n"))
	t.Setenv("KILN_WORKERS", "2")
	t.Setenv("KILN_SOURCE__GIT_COMMAND", "/usr/local/bin/git")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "/usr/local/bin/git", cfg.Source.GitCommand)

	cfg, err = config.Load(map[string]interface{}{"workers": 8})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers, "flags beat the environment")
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"malformed toml", "workers = [", errors.ErrConfigParse},
		{"empty suffix", `template_suffix = ""`, errors.ErrConfigInvalid},
		{"negative workers", "workers = -1", errors.ErrConfigInvalid},
		{"zero attempts", "max_attempts = 0", errors.ErrConfigInvalid},
		{"bad color", "[output]\ncolor = \"sometimes\"", errors.ErrConfigInvalid},
		{"bad duration", "[hooks]\ntimeout = \"soon\"", errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFile(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, 2, errors.ExitCode(err))
		})
	}
}

func TestMarshal(t *testing.T) {
	cfg, err := config.LoadFile("", map[string]interface{}{
		"workers":       6,
		"hooks.timeout": "45s",
		"output.color":  config.ColorNever,
	})
	require.NoError(t, err)

	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workers = 6")
	assert.Contains(t, string(data), "[hooks]")
	assert.Contains(t, string(data), "45s")

	// the rendered file loads back to the same configuration
	reloaded, err := config.LoadFile(writeConfig(t, string(data)), nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)

	_, err = config.Marshal(nil)
	assert.Error(t, err)
}

func TestInitializeAndGet(t *testing.T) {
	custom := config.Default()
	custom.Workers = 3
	config.Initialize(custom)
	assert.Equal(t, 3, config.Get().Workers)

	config.Initialize(nil)
	assert.Equal(t, 1, config.Get().Workers)
}
