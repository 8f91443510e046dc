package errors

import (
	"errors"
	"fmt"
)

// Error kinds shared by every seqflow package.

var (
	// ErrInvalidArgument indicates a stage or source was given an argument outside its domain
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTypeError indicates the element type lacks a capability the stage needs
	ErrTypeError = errors.New("type error")

	// ErrUnboundedSort indicates a buffering stage was placed on a provably infinite sequence
	ErrUnboundedSort = errors.New("unbounded sort")

	// ErrStreamConsumed indicates a terminal operation ran on an already evaluated pipeline
	ErrStreamConsumed = errors.New("stream has already been operated upon or closed")

	// ErrIO indicates an external source could not be opened or read
	ErrIO = errors.New("i/o error")

	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")
)

// Code names the error kind of err, or "" when err is nil.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	case errors.Is(err, ErrTypeError):
		return "TYPE_ERROR"
	case errors.Is(err, ErrUnboundedSort):
		return "UNBOUNDED_SORT"
	case errors.Is(err, ErrStreamConsumed), errors.Is(err, ErrClosed):
		return "STATE_ERROR"
	case errors.Is(err, ErrIO):
		return "IO_ERROR"
	default:
		return "UNKNOWN"
	}
}

// IsProgrammerError returns true if err reports misuse of the pipeline API rather than
// a failure of the data or of an external source
func IsProgrammerError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrTypeError) ||
		errors.Is(err, ErrUnboundedSort) ||
		errors.Is(err, ErrStreamConsumed)
}

// ValidationError describes an argument rejected by a stage constructor.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint sets the hint and returns the receiver for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap returns ErrInvalidArgument so callers can test with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// OperationError wraps a failure of a named operation, e.g. opening a line source.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError with no extra context.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext sets the context string and returns the receiver.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

// Unwrap returns the cause.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

// IOError is an OperationError raised by an external source. It matches both ErrIO
// and the underlying cause, which is propagated unmodified.
type IOError struct {
	OperationError
	Path string
}

// NewIOError creates an IOError for operation op on path.
func NewIOError(module, op, path string, cause error) *IOError {
	return &IOError{
		OperationError: OperationError{Module: module, Operation: op, Cause: cause, Context: path},
		Path:           path,
	}
}

// Unwrap returns ErrIO and the cause.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Cause}
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
