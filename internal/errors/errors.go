// Package errors provides centralized error definitions and error handling
// utilities for the Cascade codebase. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and
// error classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - PoolError: errors related to the worker pool
//   - GraphError: errors related to graph construction and scheduling
//   - TaskError: a failure inside a single task's action
//   - ManifestError: errors related to task manifest files
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or state
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewGraphError("scheduling failed", errors.ErrDependencyCycle)
//
//	// Task failure with context
//	err := errors.NewTaskError(taskID, "compile", cause)
//
// Checking errors:
//
//	// Check for specific sentinel errors
//	if errors.Is(err, errors.ErrDependencyCycle) { ... }
//
//	// Check for error types
//	var taskErr *errors.TaskError
//	if errors.As(err, &taskErr) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Pool-related sentinel errors
var (
	// ErrPoolClosed indicates that a job was submitted after shutdown began.
	ErrPoolClosed = New("pool is shutting down")
	// ErrInvalidPoolSize indicates that a pool was requested with no workers.
	ErrInvalidPoolSize = New("pool size must be positive")
)

// Graph-related sentinel errors
var (
	// ErrDependencyCycle indicates a circular dependency between tasks.
	ErrDependencyCycle = New("dependency cycle detected")
	// ErrUnknownTask indicates a dependency edge referencing a task that was
	// never registered on the graph.
	ErrUnknownTask = New("unknown task in dependency edge")
	// ErrGraphConsumed indicates that Execute was called on a graph that has
	// already been executed. Graphs are single-use.
	ErrGraphConsumed = New("graph already executed")
	// ErrTaskFailed indicates that one or more task actions failed.
	ErrTaskFailed = New("task failed")
)

// Manifest-related sentinel errors
var (
	// ErrManifestNotFound indicates that a manifest file could not be found.
	ErrManifestNotFound = New("manifest not found")
	// ErrManifestInvalid indicates that a manifest failed validation.
	ErrManifestInvalid = New("manifest is invalid")
	// ErrDuplicateTask indicates two manifest tasks sharing a name.
	ErrDuplicateTask = New("duplicate task name")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain Error Types
// -----------------------------------------------------------------------------

// PoolError represents an error from the worker pool.
type PoolError struct {
	baseError
}

// NewPoolError creates a new PoolError wrapping the given cause.
func NewPoolError(message string, cause error) *PoolError {
	return &PoolError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// GraphError represents an error from graph construction or scheduling.
type GraphError struct {
	baseError

	// Unscheduled holds the names of tasks that could not be placed in the
	// execution order, when the error came from topological sorting.
	Unscheduled []string
}

// NewGraphError creates a new GraphError wrapping the given cause.
func NewGraphError(message string, cause error) *GraphError {
	return &GraphError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithUnscheduled attaches the set of unschedulable task names to the error.
func (e *GraphError) WithUnscheduled(names []string) *GraphError {
	e.Unscheduled = names
	return e
}

// Error includes the unscheduled task names when present.
func (e *GraphError) Error() string {
	base := e.baseError.Error()
	if len(e.Unscheduled) == 0 {
		return base
	}
	return fmt.Sprintf("%s (unscheduled tasks: %v)", base, e.Unscheduled)
}

// TaskError represents the failure of a single task's action. The scheduler
// collects these and returns them joined from Execute.
type TaskError struct {
	baseError

	// TaskID is the numeric identifier of the failed task.
	TaskID int
	// Name is the diagnostic name the task was registered under.
	Name string
}

// NewTaskError creates a TaskError for the given task.
func NewTaskError(taskID int, name string, cause error) *TaskError {
	return &TaskError{
		baseError: baseError{
			message:    fmt.Sprintf("task %q (id %d) failed", name, taskID),
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
		TaskID: taskID,
		Name:   name,
	}
}

// Is reports whether the target matches this error. TaskError always matches
// the ErrTaskFailed sentinel in addition to its wrapped cause.
func (e *TaskError) Is(target error) bool {
	if target == ErrTaskFailed {
		return true
	}
	return e.baseError.Is(target)
}

// ManifestError represents an error loading or validating a task manifest.
type ManifestError struct {
	baseError

	// Path is the manifest file path, when known.
	Path string
}

// NewManifestError creates a new ManifestError wrapping the given cause.
func NewManifestError(message string, cause error) *ManifestError {
	return &ManifestError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithPath attaches the manifest path to the error.
func (e *ManifestError) WithPath(path string) *ManifestError {
	e.Path = path
	return e
}

// Error includes the manifest path when present.
func (e *ManifestError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.baseError.Error())
	}
	return e.baseError.Error()
}

// -----------------------------------------------------------------------------
// Semantic Error Types
// -----------------------------------------------------------------------------

// ValidationError indicates that input validation failed.
type ValidationError struct {
	baseError

	// Field is the name of the invalid field, when applicable.
	Field string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			cause:      ErrInvalidInput,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Field: field,
	}
}

// Error includes the field name when present.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.message)
	}
	return e.message
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// classified is implemented by errors that carry severity and audience info.
type classified interface {
	Severity() Severity
	IsUserFacing() bool
}

// GetSeverity returns the severity of an error. Unclassified errors
// default to SeverityError.
func GetSeverity(err error) Severity {
	var c classified
	if errors.As(err, &c) {
		return c.Severity()
	}
	return SeverityError
}

// IsUserFacing returns true if the error message is safe to display to
// end users. Unclassified errors are treated as internal.
func IsUserFacing(err error) bool {
	var c classified
	if errors.As(err, &c) {
		return c.IsUserFacing()
	}
	return false
}
