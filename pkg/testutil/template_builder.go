package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/kiln/pkg/constants"
)

// TestTemplate is a template directory under construction
type TestTemplate struct {
	t   *testing.T
	Dir string
}

// NewTemplate creates an empty template directory
func NewTemplate(t *testing.T) *TestTemplate {
	t.Helper()
	return &TestTemplate{t: t, Dir: t.TempDir()}
}

// Questions writes kiln.json
func (tt *TestTemplate) Questions(json string) *TestTemplate {
	tt.t.Helper()
	CreateFile(tt.t, tt.Dir, constants.QuestionFiles[0], json)
	return tt
}

// QuestionsYAML writes kiln.yml
func (tt *TestTemplate) QuestionsYAML(yaml string) *TestTemplate {
	tt.t.Helper()
	CreateFile(tt.t, tt.Dir, constants.QuestionFiles[1], yaml)
	return tt
}

// File adds a file; rel is slash-separated and may contain expressions
func (tt *TestTemplate) File(rel, content string) *TestTemplate {
	tt.t.Helper()
	CreateFile(tt.t, tt.Dir, rel, content)
	return tt
}

// EmptyDir adds an empty directory
func (tt *TestTemplate) EmptyDir(rel string) *TestTemplate {
	tt.t.Helper()
	CreateDir(tt.t, tt.Dir, rel)
	return tt
}

// Ignore writes .kilnignore with one pattern per line
func (tt *TestTemplate) Ignore(patterns ...string) *TestTemplate {
	tt.t.Helper()
	CreateFile(tt.t, tt.Dir, constants.IgnoreFile, strings.Join(patterns, "\n")+"\n")
	return tt
}

// Hook installs an executable shell hook. The test is skipped where no
// POSIX shell is available.
func (tt *TestTemplate) Hook(name, script string) *TestTemplate {
	tt.t.Helper()
	if runtime.GOOS == "windows" {
		tt.t.Skip("hook scripts need a POSIX shell")
	}
	path := filepath.Join(tt.Dir, constants.HooksDir, name)
	require.NoError(tt.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(tt.t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	return tt
}

// Path returns the absolute path of a template entry
func (tt *TestTemplate) Path(rel string) string {
	return filepath.Join(tt.Dir, filepath.FromSlash(rel))
}
