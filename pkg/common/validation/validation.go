package validation

import (
	"golang.org/x/exp/constraints"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// ValidatePositive validates that value is greater than zero.
func ValidatePositive[N Number](module, field string, value N) error {
	if value <= 0 {
		return sferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegative validates that value is zero or greater.
func ValidateNonNegative[N Number](module, field string, value N) error {
	if value < 0 {
		return sferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidateNotNil validates that value is not nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil {
		return sferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return sferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}
