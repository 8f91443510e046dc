// Package context holds the cancellation checks used on every pipeline pull.
package context

import (
	"context"
	"errors"
	"time"
)

// Check returns the context error if ctx is done, or nil. It never blocks.
func Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// IsCanceled returns true if the context has been canceled
func IsCanceled(ctx context.Context) bool {
	return Check(ctx) != nil
}

// IsTimedOut returns true if the context was canceled due to a timeout
func IsTimedOut(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}

// WithOptionalTimeout derives a context with timeout when timeout > 0; otherwise it
// returns a plain cancelable child of parent.
func WithOptionalTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(parent, timeout)
	}
	return context.WithCancel(parent)
}
