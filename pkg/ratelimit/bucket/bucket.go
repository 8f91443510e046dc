// Package bucket implements a token bucket limiter.
package bucket

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/vnykmshr/seqflow/pkg/common/validation"
)

const module = "bucket"

// Rate is the number of tokens added per second.
type Rate float64

// Unlimited never makes a caller wait.
var Unlimited = Rate(math.Inf(1))

// Every converts a minimum interval between events to a Rate.
func Every(interval time.Duration) Rate {
	if interval <= 0 {
		return Unlimited
	}
	return Rate(time.Second) / Rate(interval)
}

// Clock provides the current time. It can be replaced in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Config holds the settings of a Limiter.
type Config struct {
	// Rate is the refill rate. It must be positive.
	Rate Rate

	// Burst is the bucket capacity. The bucket starts full.
	Burst int

	// Clock defaults to the system clock.
	Clock Clock
}

// Limiter is a token bucket. It is safe for concurrent use.
type Limiter struct {
	mu     sync.Mutex
	rate   Rate
	burst  int
	tokens float64
	last   time.Time
	clock  Clock
}

// New returns a full limiter refilling at rate tokens per second.
func New(rate Rate, burst int) (*Limiter, error) {
	return NewWithConfig(Config{Rate: rate, Burst: burst})
}

// NewWithConfig returns a limiter for cfg.
func NewWithConfig(cfg Config) (*Limiter, error) {
	if err := validation.ValidatePositive(module, "rate", float64(cfg.Rate)); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive(module, "burst", cfg.Burst); err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	return &Limiter{
		rate:   cfg.Rate,
		burst:  cfg.Burst,
		tokens: float64(cfg.Burst),
		last:   cfg.Clock.Now(),
		clock:  cfg.Clock,
	}, nil
}

// Allow takes a token if one is available now.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill(l.clock.Now())
	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// Wait blocks until a token is available and takes it. If ctx ends first the
// token is returned to the bucket and ctx.Err() is returned.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	delay := l.reserve()
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		l.release()
		return ctx.Err()
	}
}

// Tokens reports the tokens available now. It is negative while callers wait.
func (l *Limiter) Tokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill(l.clock.Now())
	return l.tokens
}

// Rate returns the refill rate.
func (l *Limiter) Rate() Rate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rate
}

// Burst returns the bucket capacity.
func (l *Limiter) Burst() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.burst
}

// reserve takes a token, possibly driving the balance negative, and returns how
// long the caller has to wait for it.
func (l *Limiter) reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	l.refill(now)
	l.tokens--
	if l.tokens >= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) * -l.tokens / float64(l.rate))
}

func (l *Limiter) release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refill(l.clock.Now())
	l.tokens = math.Min(l.tokens+1, float64(l.burst))
}

func (l *Limiter) refill(now time.Time) {
	if math.IsInf(float64(l.rate), 1) {
		l.tokens = float64(l.burst)
		l.last = now
		return
	}
	elapsed := now.Sub(l.last)
	if elapsed <= 0 {
		return
	}
	l.tokens = math.Min(l.tokens+elapsed.Seconds()*float64(l.rate), float64(l.burst))
	l.last = now
}
