package clock

import (
	"context"
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*manualWaiter
}

type manualWaiter struct {
	clock    *Manual
	deadline time.Time
	period   time.Duration
	ch       chan time.Time
}

// NewManual creates a manual clock starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (clock *Manual) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *Manual) NewTimer(d time.Duration) Timer {
	return clock.addWaiter(d, 0)
}

func (clock *Manual) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker period")
	}
	return &manualTicker{waiter: clock.addWaiter(d, d)}
}

// Advance moves time forward and fires every timer and ticker that became due.
// Sends are non-blocking and channels hold one value, like the time package.
func (clock *Manual) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()

	clock.now = clock.now.Add(d)
	remaining := clock.waiters[:0]
	for _, waiter := range clock.waiters {
		if waiter.deadline.After(clock.now) {
			remaining = append(remaining, waiter)
			continue
		}
		select {
		case waiter.ch <- clock.now:
		default:
		}
		if waiter.period > 0 {
			for !waiter.deadline.After(clock.now) {
				waiter.deadline = waiter.deadline.Add(waiter.period)
			}
			remaining = append(remaining, waiter)
		}
	}
	clock.waiters = remaining
}

// Waiters returns the number of pending timers and tickers.
func (clock *Manual) Waiters() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.waiters)
}

// BlockUntil waits until at least n timers or tickers are pending, or ctx ends.
func (clock *Manual) BlockUntil(ctx context.Context, n int) error {
	for {
		if clock.Waiters() >= n {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

func (clock *Manual) addWaiter(d, period time.Duration) *manualWaiter {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	waiter := &manualWaiter{
		clock:    clock,
		deadline: clock.now.Add(d),
		period:   period,
		ch:       make(chan time.Time, 1),
	}
	clock.waiters = append(clock.waiters, waiter)
	return waiter
}

func (clock *Manual) remove(target *manualWaiter) bool {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	for i, waiter := range clock.waiters {
		if waiter == target {
			clock.waiters = append(clock.waiters[:i], clock.waiters[i+1:]...)
			return true
		}
	}
	return false
}

func (waiter *manualWaiter) C() <-chan time.Time { return waiter.ch }
func (waiter *manualWaiter) Stop() bool          { return waiter.clock.remove(waiter) }

type manualTicker struct {
	waiter *manualWaiter
}

func (ticker *manualTicker) C() <-chan time.Time { return ticker.waiter.ch }
func (ticker *manualTicker) Stop()               { ticker.waiter.clock.remove(ticker.waiter) }
