// Package derrors provides custom error types for bench.
// Mark errors are caller-correctable usage errors: they are returned at the point
// of the offending call and never retried.
package derrors

import (
	"fmt"
)

// AnonymousMark is the placeholder used in messages for marks without an id
const AnonymousMark = "<anonymous>"

// BenchError is the base interface for all bench errors
type BenchError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all bench errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func markName(id string) string {
	if id == "" {
		return AnonymousMark
	}
	return id
}

// AlreadyStartedError is returned when starting a mark that is running and not paused
type AlreadyStartedError struct {
	baseError
	Mark string
}

// NewAlreadyStartedError creates a new already started error
func NewAlreadyStartedError(mark string) *AlreadyStartedError {
	name := markName(mark)
	return &AlreadyStartedError{
		baseError: baseError{
			code:    "ALREADY_STARTED",
			message: fmt.Sprintf("cannot start the %s mark, it is already started", name),
		},
		Mark: name,
	}
}

// NotStartedError is returned when stopping or pausing an idle mark
type NotStartedError struct {
	baseError
	Mark string
	Op   string
}

// NewNotStartedError creates a new not started error; op names the rejected operation
func NewNotStartedError(mark, op string) *NotStartedError {
	name := markName(mark)
	return &NotStartedError{
		baseError: baseError{
			code:    "NOT_STARTED",
			message: fmt.Sprintf("cannot %s the %s mark, it has not been started", op, name),
		},
		Mark: name,
		Op:   op,
	}
}

// AlreadyPausedError is returned when pausing a paused mark
type AlreadyPausedError struct {
	baseError
	Mark string
}

// NewAlreadyPausedError creates a new already paused error
func NewAlreadyPausedError(mark string) *AlreadyPausedError {
	name := markName(mark)
	return &AlreadyPausedError{
		baseError: baseError{
			code:    "ALREADY_PAUSED",
			message: fmt.Sprintf("cannot pause the %s mark, it is already paused", name),
		},
		Mark: name,
	}
}

// InvalidWidthError is returned when a report is requested with a non-positive width
type InvalidWidthError struct {
	baseError
	Width int
}

// NewInvalidWidthError creates a new invalid width error
func NewInvalidWidthError(width int) *InvalidWidthError {
	return &InvalidWidthError{
		baseError: baseError{
			code:    "INVALID_WIDTH",
			message: fmt.Sprintf("the graph width must be positive, given %d", width),
		},
		Width: width,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    "VALIDATION_ERROR",
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// ExecutionError represents errors while running a timed step
type ExecutionError struct {
	baseError
	Step string
}

// NewExecutionError creates a new execution error
func NewExecutionError(step string, message string, cause error) *ExecutionError {
	return &ExecutionError{
		baseError: baseError{
			code:    "EXEC_ERROR",
			message: message,
			cause:   cause,
		},
		Step: step,
	}
}

// FormatError is returned for an unknown or failing report format
type FormatError struct {
	baseError
	Format string
}

// NewFormatError creates a new format error
func NewFormatError(format string, message string, cause error) *FormatError {
	return &FormatError{
		baseError: baseError{
			code:    "FORMAT_ERROR",
			message: message,
			cause:   cause,
		},
		Format: format,
	}
}
