package operations

import (
	"io/fs"

	"github.com/arthur-debert/kiln/pkg/types"
)

// Writer performs the mutating half of an operation. The Executor decides
// what to do; a Writer only does it.
type Writer interface {
	// MkdirAll creates path and any missing parents
	MkdirAll(path string, mode fs.FileMode) error
	// WriteFile creates path with data. An existing file is replaced only
	// when replace is set.
	WriteFile(path string, data []byte, mode fs.FileMode, replace bool) error
	// CopyFile copies src to dst. An existing dst is replaced only when
	// replace is set.
	CopyFile(src, dst string, replace bool) error
}

// FSWriter writes through a types.FS. It backs in-memory runs.
type FSWriter struct {
	fs types.FS
}

// NewFSWriter returns a Writer over fsys
func NewFSWriter(fsys types.FS) *FSWriter {
	return &FSWriter{fs: fsys}
}

// MkdirAll implements Writer
func (w *FSWriter) MkdirAll(path string, mode fs.FileMode) error {
	return w.fs.MkdirAll(path, mode)
}

// WriteFile implements Writer
func (w *FSWriter) WriteFile(path string, data []byte, mode fs.FileMode, replace bool) error {
	if !replace {
		if _, err := w.fs.Stat(path); err == nil {
			return &fs.PathError{Op: "write", Path: path, Err: fs.ErrExist}
		}
	}
	return w.fs.WriteFile(path, data, mode)
}

// CopyFile implements Writer
func (w *FSWriter) CopyFile(src, dst string, replace bool) error {
	data, err := w.fs.ReadFile(src)
	if err != nil {
		return err
	}
	return w.WriteFile(dst, data, 0644, replace)
}
