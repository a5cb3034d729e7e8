package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad       ErrorCode = "CONFIG_LOAD"
	ErrConfigParse      ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrOutputExists     ErrorCode = "OUTPUT_EXISTS"
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrIgnoreInvalid    ErrorCode = "IGNORE_INVALID"

	// Template errors
	ErrTemplateRender ErrorCode = "TEMPLATE_RENDER"
	ErrPathInvalid    ErrorCode = "PATH_INVALID"

	// FileSystem errors
	ErrFileRead   ErrorCode = "FILE_READ"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileCopy   ErrorCode = "FILE_COPY"
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrDirCreate  ErrorCode = "DIR_CREATE"

	// Hook errors
	ErrHookExecute ErrorCode = "HOOK_EXECUTE"

	// User input errors
	ErrValidation ErrorCode = "VALIDATION"
	ErrPrompt     ErrorCode = "PROMPT"
)

// ErrorCategory groups codes into the failure classes reported to the user
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryTemplate   ErrorCategory = "template"
	CategoryIO         ErrorCategory = "io"
	CategoryHook       ErrorCategory = "hook"
	CategoryValidation ErrorCategory = "validation"
	CategoryPrompt     ErrorCategory = "prompt"
	CategoryOther      ErrorCategory = "other"
)

var codeCategories = map[ErrorCode]ErrorCategory{
	ErrConfigLoad:       CategoryConfig,
	ErrConfigParse:      CategoryConfig,
	ErrConfigInvalid:    CategoryConfig,
	ErrOutputExists:     CategoryConfig,
	ErrTemplateNotFound: CategoryConfig,
	ErrIgnoreInvalid:    CategoryConfig,
	ErrTemplateRender:   CategoryTemplate,
	ErrPathInvalid:      CategoryTemplate,
	ErrFileRead:         CategoryIO,
	ErrFileWrite:        CategoryIO,
	ErrFileCopy:         CategoryIO,
	ErrFileAccess:       CategoryIO,
	ErrDirCreate:        CategoryIO,
	ErrHookExecute:      CategoryHook,
	ErrValidation:       CategoryValidation,
	ErrPrompt:           CategoryPrompt,
}

var categoryExitCodes = map[ErrorCategory]int{
	CategoryConfig:     2,
	CategoryTemplate:   3,
	CategoryIO:         4,
	CategoryHook:       5,
	CategoryValidation: 6,
	CategoryPrompt:     7,
}

// KilnError represents a structured error with code and details
type KilnError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KilnError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KilnError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *KilnError) Is(target error) bool {
	var targetErr *KilnError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new KilnError with the given code and message
func New(code ErrorCode, message string) *KilnError {
	return &KilnError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new KilnError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KilnError {
	return &KilnError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a KilnError
func Wrap(err error, code ErrorCode, message string) *KilnError {
	if err == nil {
		return nil
	}
	return &KilnError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KilnError {
	if err == nil {
		return nil
	}
	return &KilnError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *KilnError) WithDetail(key string, value interface{}) *KilnError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var kilnErr *KilnError
	if errors.As(err, &kilnErr) {
		return kilnErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a KilnError
func GetErrorCode(err error) ErrorCode {
	var kilnErr *KilnError
	if errors.As(err, &kilnErr) {
		return kilnErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a KilnError
func GetErrorDetails(err error) map[string]interface{} {
	var kilnErr *KilnError
	if errors.As(err, &kilnErr) {
		return kilnErr.Details
	}
	return nil
}

// Category returns the failure class of an error. The outermost KilnError
// decides, so a hook failure wrapping an IO error is still a hook failure.
func Category(err error) ErrorCategory {
	if err == nil {
		return ""
	}
	if category, ok := codeCategories[GetErrorCode(err)]; ok {
		return category
	}
	return CategoryOther
}

// ExitCode maps an error to the process exit status, 0 for nil
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := categoryExitCodes[Category(err)]; ok {
		return code
	}
	return 1
}
