package operations

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// SynthfsWriter writes to the OS filesystem through synthfs. Each call runs
// as its own synthfs pipeline with rollback enabled, so a failed write
// leaves no partial state behind.
type SynthfsWriter struct {
	filesystem filesystem.FullFileSystem
	logger     zerolog.Logger
}

// NewSynthfsWriter returns a Writer over the OS filesystem. Paths must be
// absolute.
func NewSynthfsWriter() *SynthfsWriter {
	osfs := filesystem.NewOSFileSystem("/")
	return &SynthfsWriter{
		filesystem: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
		logger:     logging.GetLogger("operations.synthfs"),
	}
}

// MkdirAll implements Writer
func (w *SynthfsWriter) MkdirAll(path string, mode fs.FileMode) error {
	sfs := synthfs.New()
	return w.run(sfs.CreateDirWithID(opID("mkdir", path), path, mode))
}

// WriteFile implements Writer
func (w *SynthfsWriter) WriteFile(path string, data []byte, mode fs.FileMode, replace bool) error {
	sfs := synthfs.New()
	if replace {
		if err := w.run(w.remove(sfs, path)); err != nil {
			return err
		}
	}
	return w.run(sfs.CreateFileWithID(opID("write", path), path, data, mode))
}

// CopyFile implements Writer
func (w *SynthfsWriter) CopyFile(src, dst string, replace bool) error {
	sfs := synthfs.New()
	if replace {
		if err := w.run(w.remove(sfs, dst)); err != nil {
			return err
		}
	}
	return w.run(sfs.CopyWithID(opID("copy", dst), src, dst))
}

func (w *SynthfsWriter) remove(sfs *synthfs.SynthFS, path string) synthfs.Operation {
	return sfs.CustomOperationWithID(opID("remove", path), func(ctx context.Context, fsys filesystem.FileSystem) error {
		if err := fsys.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	})
}

func (w *SynthfsWriter) run(ops ...synthfs.Operation) error {
	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = true

	result, err := synthfs.RunWithOptions(context.Background(), w.filesystem, options, ops...)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	for _, r := range result.GetOperations() {
		opResult, ok := r.(synthfs.OperationResult)
		if !ok {
			continue
		}
		w.logger.Trace().
			Str("operationID", string(opResult.OperationID)).
			Dur("duration", opResult.Duration).
			Msg("synthfs operation finished")
		if opResult.Status == synthfs.StatusFailure || opResult.Status == synthfs.StatusValidation {
			if opResult.Error != nil {
				return opResult.Error
			}
			return fmt.Errorf("synthfs operation %s failed", opResult.OperationID)
		}
	}
	return nil
}

func opID(kind, path string) string {
	return fmt.Sprintf("%s_%s_%d", kind, filepath.Base(path), time.Now().UnixNano())
}
