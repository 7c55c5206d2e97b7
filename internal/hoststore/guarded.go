package hoststore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Guarded wraps a Store with a per-key rate limiter and a shared
// circuit breaker, so a flapping backend degrades into fast failures
// instead of piling up blocked callers.
type Guarded struct {
	mu       sync.Mutex
	inner    Store
	breaker  *gobreaker.CircuitBreaker
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewGuarded wraps inner. rps/burst bound the per-key call rate;
// name identifies the breaker in logs/metrics.
func NewGuarded(inner Store, name string, rps float64, burst int) *Guarded {
	settings := gobreaker.Settings{Name: name}
	settings.Interval = 60 * time.Second
	settings.Timeout = 60 * time.Second
	settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
		if counts.ConsecutiveFailures >= 3 {
			return true
		}
		if counts.Requests < 20 {
			return false
		}
		return float64(counts.TotalFailures)/float64(counts.Requests) > 0.05
	}

	return &Guarded{
		inner:    inner,
		breaker:  gobreaker.NewCircuitBreaker(settings),
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

func (g *Guarded) limiterFor(key string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()
	limiter, ok := g.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(g.rps), g.burst)
		g.limiters[key] = limiter
	}
	return limiter
}

// Load waits for the per-key limiter, then runs inner.Load through the
// shared breaker.
func (g *Guarded) Load(ctx context.Context, key string) ([]byte, error) {
	if err := g.limiterFor(key).Wait(ctx); err != nil {
		return nil, fmt.Errorf("hoststore: rate limit wait: %w", err)
	}
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.inner.Load(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	blob, _ := result.([]byte)
	return blob, nil
}

// Save waits for the per-key limiter, then runs inner.Save through the
// shared breaker.
func (g *Guarded) Save(ctx context.Context, key string, blob []byte) (string, error) {
	if err := g.limiterFor(key).Wait(ctx); err != nil {
		return "", fmt.Errorf("hoststore: rate limit wait: %w", err)
	}
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return g.inner.Save(ctx, key, blob)
	})
	if err != nil {
		return "", err
	}
	writeID, _ := result.(string)
	return writeID, nil
}
