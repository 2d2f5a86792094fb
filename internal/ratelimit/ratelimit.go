package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter paces the records written in multi-document mode.
type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or negative limit for no rate limiting.
func New(recordsPerSecond float64) *Limiter {
	if recordsPerSecond <= 0 {
		return &Limiter{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	// Burst of 1: the first record goes out immediately, later ones are spaced
	// evenly.
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(recordsPerSecond), 1),
	}
}

// Wait blocks until the next record may be written or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.Unlimited() {
		return ctx.Err()
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

func (l *Limiter) Unlimited() bool {
	return l.limiter.Limit() == rate.Inf
}

// Limit returns records per second, 0 meaning unlimited.
func (l *Limiter) Limit() float64 {
	if l.Unlimited() {
		return 0
	}
	return float64(l.limiter.Limit())
}
