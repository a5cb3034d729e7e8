// cmd/kiln-completions/main_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: temp directories
// PURPOSE: Test completion script generation

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "completions")
	require.NoError(t, run([]string{"--dir", dir}))

	for _, name := range []string{"kiln.bash", "_kiln", "kiln.fish", "kiln.ps1"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "kiln", name)
	}
}

func TestRun_Usage(t *testing.T) {
	assert.Error(t, run(nil))
	assert.ErrorContains(t, run([]string{"tcsh"}), "unknown shell")
}
