package context

import (
	"context"
	"testing"
	"time"
)

func TestCheck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	if err := Check(ctx); err != nil {
		t.Fatalf("live context: got %v", err)
	}
	cancel()
	if err := Check(ctx); err != context.Canceled {
		t.Fatalf("canceled context: got %v, want context.Canceled", err)
	}
	if !IsCanceled(ctx) {
		t.Error("IsCanceled should be true after cancel")
	}
	if IsTimedOut(ctx) {
		t.Error("IsTimedOut should be false for a plain cancel")
	}
}

func TestWithOptionalTimeout(t *testing.T) {
	ctx, cancel := WithOptionalTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()
	if !IsTimedOut(ctx) {
		t.Error("expected deadline exceeded")
	}

	ctx2, cancel2 := WithOptionalTimeout(context.Background(), 0)
	if _, ok := ctx2.Deadline(); ok {
		t.Error("zero timeout should not set a deadline")
	}
	cancel2()
	if !IsCanceled(ctx2) {
		t.Error("cancel func should cancel the derived context")
	}
}
