package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name             string
		recordsPerSecond float64
		expectUnlimited  bool
	}{
		{
			name:             "unlimited_zero",
			recordsPerSecond: 0,
			expectUnlimited:  true,
		},
		{
			name:             "unlimited_negative",
			recordsPerSecond: -1,
			expectUnlimited:  true,
		},
		{
			name:             "limited_ten_per_second",
			recordsPerSecond: 10,
		},
		{
			name:             "limited_fractional",
			recordsPerSecond: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := New(tt.recordsPerSecond)

			if limiter.Unlimited() != tt.expectUnlimited {
				t.Errorf("Unlimited() = %t, want %t", limiter.Unlimited(), tt.expectUnlimited)
			}

			want := tt.recordsPerSecond
			if tt.expectUnlimited {
				want = 0
			}
			if got := limiter.Limit(); got != want {
				t.Errorf("Limit() = %f, want %f", got, want)
			}
		})
	}
}

func TestLimiter_Wait(t *testing.T) {
	t.Run("unlimited_no_wait", func(t *testing.T) {
		limiter := New(0)

		start := time.Now()
		for range 100 {
			if err := limiter.Wait(context.Background()); err != nil {
				t.Fatalf("Wait() error = %v", err)
			}
		}

		if duration := time.Since(start); duration > 50*time.Millisecond {
			t.Errorf("unlimited limiter took %v for 100 records", duration)
		}
	})

	t.Run("unlimited_honours_cancelled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := New(0).Wait(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Wait() error = %v, want context.Canceled", err)
		}
	})

	t.Run("limited_spaces_records", func(t *testing.T) {
		limiter := New(20) // one record every 50ms
		ctx := context.Background()

		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("first Wait() error = %v", err)
		}

		start := time.Now()
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("second Wait() error = %v", err)
		}

		if duration := time.Since(start); duration < 30*time.Millisecond {
			t.Errorf("second record waited %v, want about 50ms", duration)
		}
	})

	t.Run("context_cancellation", func(t *testing.T) {
		limiter := New(1)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		if err := limiter.Wait(context.Background()); err != nil {
			t.Fatalf("first Wait() error = %v", err)
		}

		if err := limiter.Wait(ctx); err == nil {
			t.Error("expected context cancellation error")
		}
	})
}
