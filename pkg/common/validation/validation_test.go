package validation

import (
	"errors"
	"testing"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantError bool
	}{
		{"positive value", 10, false},
		{"positive value 1", 1, false},
		{"zero value", 0, true},
		{"negative value", -1, true},
		{"large negative", -1000000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("stream", "workers", tt.value)

			if tt.wantError {
				if !sferrors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if !errors.Is(err, sferrors.ErrInvalidArgument) {
					t.Error("expected ErrInvalidArgument")
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name      string
		value     int64
		wantError bool
	}{
		{"positive value", 10, false},
		{"zero value", 0, false},
		{"negative value", -1, true},
		{"large negative", -99999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("stream", "limit", tt.value)
			if (err != nil) != tt.wantError {
				t.Fatalf("ValidateNonNegative(%d) error = %v, wantError %v", tt.value, err, tt.wantError)
			}
		})
	}
}

func TestValidateNonNegative_Float(t *testing.T) {
	if err := ValidateNonNegative("test", "rate", -0.001); err == nil {
		t.Error("expected error for small negative float")
	}
	if err := ValidateNonNegative("test", "rate", 0.0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateNotNil(t *testing.T) {
	if err := ValidateNotNil("stream", "predicate", nil); err == nil {
		t.Error("expected error for nil")
	}
	if err := ValidateNotNil("stream", "predicate", func(int) bool { return true }); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateNotEmpty(t *testing.T) {
	err := ValidateNotEmpty("source", "path", "")
	if err == nil {
		t.Fatal("expected error for empty string")
	}
	want := "source: invalid path= (cannot be empty) - provide a non-empty path"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err := ValidateNotEmpty("source", "path", "users.txt"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
