package simulate

import (
	"context"
	"time"
)

// Clock abstracts time for the engine so tests run without wall-clock
// waits. Sleep must return early when ctx is done.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// FakeClock is a deterministic clock for tests. Every Now call advances the
// clock by Step so log timestamps stay strictly ordered; Sleep advances
// time without blocking.
type FakeClock struct {
	Current time.Time
	Step    time.Duration
}

// NewFakeClock starts a fake clock at a fixed instant with a 1ms step.
func NewFakeClock() *FakeClock {
	return &FakeClock{
		Current: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Step:    time.Millisecond,
	}
}

func (c *FakeClock) Now() time.Time {
	now := c.Current
	c.Current = c.Current.Add(c.Step)
	return now
}

func (c *FakeClock) Sleep(_ context.Context, d time.Duration) {
	c.Current = c.Current.Add(d)
}
