package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrInvalidArgument", ErrInvalidArgument, "invalid argument"},
		{"ErrTypeError", ErrTypeError, "type error"},
		{"ErrUnboundedSort", ErrUnboundedSort, "unbounded sort"},
		{"ErrStreamConsumed", ErrStreamConsumed, "stream has already been operated upon or closed"},
		{"ErrIO", ErrIO, "i/o error"},
		{"ErrClosed", ErrClosed, "resource is closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", NewValidationError("stream", "limit", -1, "cannot be negative"), "INVALID_ARGUMENT"},
		{"wrapped type error", fmt.Errorf("sorted: %w", ErrTypeError), "TYPE_ERROR"},
		{"unbounded", ErrUnboundedSort, "UNBOUNDED_SORT"},
		{"consumed", ErrStreamConsumed, "STATE_ERROR"},
		{"closed", ErrClosed, "STATE_ERROR"},
		{"io", NewIOError("source", "Open", "/nope", fs.ErrNotExist), "IO_ERROR"},
		{"other", errors.New("boom"), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsProgrammerError(t *testing.T) {
	if !IsProgrammerError(ErrStreamConsumed) {
		t.Error("ErrStreamConsumed should be a programmer error")
	}
	if !IsProgrammerError(NewValidationError("stream", "skip", -2, "cannot be negative")) {
		t.Error("ValidationError should be a programmer error")
	}
	if IsProgrammerError(NewIOError("source", "Open", "x", fs.ErrNotExist)) {
		t.Error("IOError should not be a programmer error")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "stream",
				Field:  "limit",
				Value:  -1,
				Reason: "cannot be negative",
			},
			want: "stream: invalid limit=-1 (cannot be negative)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "stream",
				Field:  "skip",
				Value:  -3,
				Reason: "cannot be negative",
				Hint:   "use 0 or a positive value",
			},
			want: "stream: invalid skip=-3 (cannot be negative) - use 0 or a positive value",
		},
		{
			name: "string value",
			err: &ValidationError{
				Module: "source",
				Field:  "cron",
				Value:  "",
				Reason: "cannot be empty",
			},
			want: "source: invalid cron= (cannot be empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := NewValidationError("test", "field", 0, "test")

	if verr.Unwrap() != ErrInvalidArgument {
		t.Errorf("Unwrap() = %v, want ErrInvalidArgument", verr.Unwrap())
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", verr), ErrInvalidArgument) {
		t.Error("wrapped ValidationError should match ErrInvalidArgument")
	}

	var target *ValidationError
	if !errors.As(fmt.Errorf("wrapped: %w", verr), &target) || target.Field != "field" {
		t.Error("errors.As should recover the ValidationError")
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try using a positive value")

	if err.Hint != "try using a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try using a positive value")
	}
	if result := err.WithHint("new hint"); result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without context",
			err:  NewOperationError("source", "Scan", errors.New("token too long")),
			want: "source.Scan failed: token too long",
		},
		{
			name: "with context",
			err:  NewOperationError("source", "Open", errors.New("denied")).WithContext("/etc/shadow"),
			want: "source.Open failed: denied (/etc/shadow)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIOError_Unwrap(t *testing.T) {
	err := NewIOError("source", "Open", "/missing.txt", fs.ErrNotExist)

	if !errors.Is(err, ErrIO) {
		t.Error("IOError should match ErrIO")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("IOError should propagate the cause unmodified")
	}
	if err.Path != "/missing.txt" {
		t.Errorf("Path = %q", err.Path)
	}
	if got, want := err.Error(), "source.Open failed: file does not exist (/missing.txt)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
