package classifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/petcheck/internal/model"
)

// rateLimiter is a token bucket refilled continuously at perMinute tokens
// per minute, up to perMinute tokens.
type rateLimiter struct {
	lastRefill time.Time
	now        func() time.Time
	tokens     float64
	capacity   float64
	perSecond  float64
	mu         sync.Mutex
}

func newRateLimiter(perMinute int) *rateLimiter {
	return &rateLimiter{
		tokens:     float64(perMinute),
		capacity:   float64(perMinute),
		perSecond:  float64(perMinute) / 60,
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	for {
		delay := rl.reserve()
		if delay == 0 {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-timer.C:
		}
	}
}

// reserve takes a token and returns zero, or returns how long until one is
// available.
func (rl *rateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.tokens += now.Sub(rl.lastRefill).Seconds() * rl.perSecond
	if rl.tokens > rl.capacity {
		rl.tokens = rl.capacity
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return 0
	}
	return time.Duration((1 - rl.tokens) / rl.perSecond * float64(time.Second))
}

// limitedClient spaces out calls to a backend that cannot take bursts.
type limitedClient struct {
	next    Client
	limiter *rateLimiter
}

func (c *limitedClient) Classify(ctx context.Context, imagePath string, arch model.Arch) (string, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return "", err
	}
	return c.next.Classify(ctx, imagePath, arch)
}
