package raindrop

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum spacing between outbound requests, measured
// globally across all operations. Callers queue on the mutex in arrival
// order; each admitted caller observes and advances the shared "time of
// last request" marker atomically, so two concurrent calls can never both
// fire inside the spacing window.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	// Injectable for tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPacer returns a pacer with the given minimum inter-request interval.
// A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until the minimum interval since the previous admitted request
// has elapsed, then marks this request as the most recent one. It returns
// early with a canceled error when ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.interval > 0 && !p.last.IsZero() {
		next := p.last.Add(p.interval)
		if d := next.Sub(p.now()); d > 0 {
			if err := p.sleep(ctx, d); err != nil {
				return wrapError(KindCanceled, "canceled while waiting for rate limit", err)
			}
		}
	}
	p.last = p.now()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
