package operations

import (
	"fmt"
	"io/fs"
)

// OperationType is one of the four things kiln does to an entry
type OperationType int

const (
	// Copy passes a non-template file through byte for byte
	Copy OperationType = iota

	// Write stores rendered template content
	Write

	// CreateDirectory creates a directory and any missing parents
	CreateDirectory

	// Ignore leaves an entry matching an ignore pattern out of the output
	Ignore
)

// String returns the operation name used in logs
func (t OperationType) String() string {
	switch t {
	case Copy:
		return "Copy"
	case Write:
		return "Write"
	case CreateDirectory:
		return "CreateDirectory"
	case Ignore:
		return "Ignore"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Operation is a single decided unit of work
type Operation struct {
	Type OperationType

	// Source is the template path, set for Copy and Ignore
	Source string

	// Target is the output path, set for everything but Ignore
	Target string

	// Content is the rendered file body for Write
	Content []byte

	// Mode is the permission of the source file, applied to the target
	Mode fs.FileMode

	// TargetExists records whether Target was present when the operation
	// was decided
	TargetExists bool
}

// Message describes the operation. overwrite says whether an existing
// target is being replaced.
func (op Operation) Message(overwrite bool) string {
	switch op.Type {
	case Copy:
		if !op.TargetExists {
			return fmt.Sprintf("Copying '%s' to '%s'", op.Source, op.Target)
		}
		if overwrite {
			return fmt.Sprintf("Copying '%s' to '%s' (overwriting existing file)", op.Source, op.Target)
		}
		return fmt.Sprintf("Skipping copy of '%s' to '%s' (target already exists)", op.Source, op.Target)
	case Write:
		if !op.TargetExists {
			return fmt.Sprintf("Writing to '%s'", op.Target)
		}
		if overwrite {
			return fmt.Sprintf("Writing to '%s' (overwriting existing file)", op.Target)
		}
		return fmt.Sprintf("Skipping write to '%s' (target already exists)", op.Target)
	case CreateDirectory:
		if op.TargetExists {
			return fmt.Sprintf("Skipping directory creation '%s' (already exists)", op.Target)
		}
		return fmt.Sprintf("Creating directory '%s'", op.Target)
	case Ignore:
		return fmt.Sprintf("Ignoring '%s' (matches ignore pattern)", op.Source)
	default:
		return fmt.Sprintf("Unknown operation on '%s'", op.Target)
	}
}

// Action is the label attached to every executed operation
type Action string

const (
	ActionCreating    Action = "creating"
	ActionOverwriting Action = "overwriting"
	ActionSkipping    Action = "skipping"
	ActionIgnoring    Action = "ignoring"
	ActionFailed      Action = "failed"
)

// OperationResult captures the outcome of executing an operation
type OperationResult struct {
	Operation Operation
	Action    Action
	Message   string
	Success   bool
	Error     error
}

// Confirmer asks the user to approve a destructive step
type Confirmer interface {
	RequestConfirmation(id, title, description string, items ...string) bool
}

// ConflictPolicy decides what happens when a Copy or Write target exists
type ConflictPolicy int

const (
	// ConflictPrompt asks once per conflicting path
	ConflictPrompt ConflictPolicy = iota
	// ConflictOverwrite replaces existing targets without asking
	ConflictOverwrite
	// ConflictSkip leaves existing targets untouched
	ConflictSkip
)

// String returns the policy name
func (p ConflictPolicy) String() string {
	switch p {
	case ConflictPrompt:
		return "prompt"
	case ConflictOverwrite:
		return "overwrite"
	case ConflictSkip:
		return "skip"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}
