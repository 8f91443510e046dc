package stream

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain enables goroutine leak detection for all tests in this package. Parallel
// pools and FromSeq pull coroutines must be gone once a terminal returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
