package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces out fetches against the complaint service so a burst of
// Refresh calls costs at most one query per gap.
type throttle struct {
	gap time.Duration

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func newThrottle(gap time.Duration) *throttle {
	if gap < 0 {
		gap = 0
	}
	return &throttle{gap: gap, now: time.Now}
}

// wait blocks until the gap since the previous fetch has passed. It returns
// false when ctx ends first; the slot is then left unclaimed.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.gap == 0 {
		return ctx.Err() == nil
	}
	for {
		t.mu.Lock()
		remaining := t.gap - t.now().Sub(t.last)
		if t.last.IsZero() || remaining <= 0 {
			t.last = t.now()
			t.mu.Unlock()
			return true
		}
		t.mu.Unlock()

		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}
