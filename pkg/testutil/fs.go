package testutil

import (
	"io/fs"

	"github.com/arthur-debert/kiln/pkg/types"
)

// StatDeniedFS wraps a types.FS so that Stat of the listed paths fails with
// a permission error while everything else passes through
type StatDeniedFS struct {
	types.FS
	Denied map[string]bool
}

// DenyStat returns fsys with Stat failing for paths
func DenyStat(fsys types.FS, paths ...string) *StatDeniedFS {
	denied := make(map[string]bool, len(paths))
	for _, p := range paths {
		denied[p] = true
	}
	return &StatDeniedFS{FS: fsys, Denied: denied}
}

// Stat implements types.FS
func (d *StatDeniedFS) Stat(name string) (fs.FileInfo, error) {
	if d.Denied[name] {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrPermission}
	}
	return d.FS.Stat(name)
}
