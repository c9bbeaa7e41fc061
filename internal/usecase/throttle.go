package usecase

import (
	"context"
	"time"
)

// FixedDelayThrottler waits a fixed interval, honoring request-context
// cancellation so a dead request does not keep a goroutine sleeping.
type FixedDelayThrottler struct {
	Interval time.Duration
}

func NewFixedDelayThrottler(interval time.Duration) *FixedDelayThrottler {
	return &FixedDelayThrottler{Interval: interval}
}

func (t *FixedDelayThrottler) Wait(ctx context.Context) error {
	timer := time.NewTimer(t.Interval)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
