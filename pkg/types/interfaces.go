package types

import (
	"io/fs"
	"path/filepath"
)

// FS is the filesystem interface required for kiln operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Walk visits root and everything beneath it in lexical order,
	// parents before children.
	Walk(root string, fn filepath.WalkFunc) error

	// RemoveAll deletes path and everything beneath it
	RemoveAll(path string) error
}
