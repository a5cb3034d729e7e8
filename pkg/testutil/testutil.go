package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/kiln/pkg/constants"
	"github.com/arthur-debert/kiln/pkg/internal/hashutil"
)

// CreateFile creates a file with the given content in dir, creating parent
// directories. It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// CreateDir creates a directory in parent. It fails the test if the
// directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, filepath.FromSlash(name))
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// WriteTree creates every file of files below root. Keys are
// slash-separated relative paths; files below hooks/ are made executable.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := CreateFile(t, root, rel, content)
		if strings.HasPrefix(rel, constants.HooksDir+"/") {
			if err := os.Chmod(path, 0755); err != nil {
				t.Fatalf("Failed to make %s executable: %v", path, err)
			}
		}
	}
}

// ReadFile returns the content of path, failing the test if it is missing
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Checksum returns the checksum of the file at path
func Checksum(t *testing.T, path string) string {
	t.Helper()

	sum, err := hashutil.CalculateFileChecksum(path)
	if err != nil {
		t.Fatalf("Failed to checksum %s: %v", path, err)
	}
	return sum
}
