package operations

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/kiln/pkg/errors"
	"github.com/arthur-debert/kiln/pkg/logging"
	"github.com/arthur-debert/kiln/pkg/types"
	"github.com/rs/zerolog"
)

const dirMode = 0755

// Executor performs operations against a filesystem. It is safe for
// concurrent use; conflict prompts are serialized so only one question is
// on screen at a time.
type Executor struct {
	fs        types.FS
	writer    Writer
	confirmer Confirmer
	policy    ConflictPolicy
	dryRun    bool

	promptMu sync.Mutex
	logger   zerolog.Logger
}

// NewExecutor creates a new operation executor. confirmer is only consulted
// under ConflictPrompt; a nil confirmer then declines every overwrite.
func NewExecutor(fs types.FS, confirmer Confirmer, policy ConflictPolicy, dryRun bool) *Executor {
	return &Executor{
		fs:        fs,
		writer:    NewFSWriter(fs),
		confirmer: confirmer,
		policy:    policy,
		dryRun:    dryRun,
		logger:    logging.GetLogger("operations.executor"),
	}
}

// WithWriter replaces the Writer that performs mutations. Reads and
// existence checks still go through the executor's filesystem.
func (e *Executor) WithWriter(w Writer) *Executor {
	e.writer = w
	return e
}

// ExecuteAll runs operations in order. A failed operation does not stop the
// ones after it.
func (e *Executor) ExecuteAll(ops []Operation) []OperationResult {
	results := make([]OperationResult, 0, len(ops))
	for _, op := range ops {
		results = append(results, e.Execute(op))
	}
	return results
}

// Execute runs a single operation
func (e *Executor) Execute(op Operation) OperationResult {
	e.logger.Debug().
		Str("type", op.Type.String()).
		Str("source", op.Source).
		Str("target", op.Target).
		Bool("target_exists", op.TargetExists).
		Bool("dry_run", e.dryRun).
		Msg("Executing operation")

	switch op.Type {
	case Ignore:
		return OperationResult{Operation: op, Action: ActionIgnoring, Message: op.Message(false), Success: true}
	case CreateDirectory:
		return e.createDirectory(op)
	case Copy, Write:
		return e.writeFile(op)
	default:
		err := errors.Newf(errors.ErrInternal, "unknown operation type: %s", op.Type)
		return failed(op, err)
	}
}

func (e *Executor) createDirectory(op Operation) OperationResult {
	if op.TargetExists {
		return OperationResult{Operation: op, Action: ActionSkipping, Message: op.Message(false), Success: true}
	}
	result := OperationResult{Operation: op, Action: ActionCreating, Message: op.Message(false), Success: true}
	if e.dryRun {
		return result
	}

	if err := e.writer.MkdirAll(op.Target, dirMode); err != nil {
		return failed(op, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", op.Target))
	}
	return result
}

func (e *Executor) writeFile(op Operation) OperationResult {
	overwrite := false
	action := ActionCreating
	if op.TargetExists {
		overwrite = e.resolveConflict(op)
		if !overwrite {
			e.logger.Info().Str("target", op.Target).Msg("Keeping existing file")
			return OperationResult{Operation: op, Action: ActionSkipping, Message: op.Message(false), Success: true}
		}
		action = ActionOverwriting
	}

	result := OperationResult{Operation: op, Action: action, Message: op.Message(overwrite), Success: true}
	if e.dryRun {
		return result
	}

	mode := op.Mode.Perm()
	if mode == 0 {
		mode = 0644
	}

	if op.Type == Copy {
		if _, err := e.fs.Stat(op.Source); err != nil {
			return failed(op, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", op.Source))
		}
	}

	parent := filepath.Dir(op.Target)
	if _, err := e.fs.Stat(parent); os.IsNotExist(err) {
		if err := e.writer.MkdirAll(parent, dirMode); err != nil {
			return failed(op, errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", op.Target))
		}
	}

	if op.Type == Copy {
		if err := e.writer.CopyFile(op.Source, op.Target, op.TargetExists); err != nil {
			return failed(op, errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s", op.Target))
		}
	} else if err := e.writer.WriteFile(op.Target, op.Content, mode, op.TargetExists); err != nil {
		return failed(op, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", op.Target))
	}

	// Copies and truncated files do not take the requested mode
	if op.Type == Copy || op.TargetExists {
		if err := e.fs.Chmod(op.Target, mode); err != nil {
			return failed(op, errors.Wrapf(err, errors.ErrFileAccess, "failed to set mode of %s", op.Target))
		}
	}
	return result
}

func (e *Executor) resolveConflict(op Operation) bool {
	switch e.policy {
	case ConflictOverwrite:
		return true
	case ConflictSkip:
		return false
	}

	if e.dryRun {
		// Nothing will be written, so there is nothing to confirm.
		return true
	}
	if e.confirmer == nil {
		return false
	}

	e.promptMu.Lock()
	defer e.promptMu.Unlock()
	return e.confirmer.RequestConfirmation(
		op.Target,
		"Overwrite existing file?",
		op.Target+" already exists",
		op.Target,
	)
}

func failed(op Operation, err error) OperationResult {
	return OperationResult{
		Operation: op,
		Action:    ActionFailed,
		Message:   err.Error(),
		Success:   false,
		Error:     err,
	}
}
