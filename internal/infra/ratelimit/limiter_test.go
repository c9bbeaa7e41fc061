package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowLimiter(t *testing.T) {
	t.Run("allows up to the limit", func(t *testing.T) {
		limiter := NewFixedWindowLimiter(3, time.Hour)
		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("1.2.3.4"), "request %d", i+1)
		}
		assert.False(t, limiter.Allow("1.2.3.4"))
	})

	t.Run("window slides", func(t *testing.T) {
		current := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		limiter := NewFixedWindowLimiter(2, time.Hour)
		limiter.now = func() time.Time { return current }

		assert.True(t, limiter.Allow("1.2.3.4"))
		current = current.Add(30 * time.Minute)
		assert.True(t, limiter.Allow("1.2.3.4"))
		assert.False(t, limiter.Allow("1.2.3.4"))

		// The first hit ages out, freeing exactly one slot.
		current = current.Add(31 * time.Minute)
		assert.True(t, limiter.Allow("1.2.3.4"))
		assert.False(t, limiter.Allow("1.2.3.4"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := NewFixedWindowLimiter(1, time.Hour)
		assert.True(t, limiter.Allow("1.2.3.4"))
		assert.False(t, limiter.Allow("1.2.3.4"))
		assert.True(t, limiter.Allow("5.6.7.8"))
	})
}
