package testutil

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(t)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > TestTimeout {
		t.Errorf("unexpected remaining time %v", remaining)
	}
}

func TestAssertions_Pass(t *testing.T) {
	sentinel := errors.New("sentinel")

	AssertNoError(t, nil)
	AssertError(t, sentinel)
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
	AssertErrorIs(t, context.Canceled, context.Canceled)
	AssertEqual(t, 3, 3)
	AssertEqual(t, "a", "a")
	AssertDeepEqual(t, []int{1, 2}, []int{1, 2})
	AssertDeepEqual(t, map[string][]int{"a": {1}}, map[string][]int{"a": {1}})
}
