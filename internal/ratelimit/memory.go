package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type bucket struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// MemoryLimiter keeps one token bucket per key in process memory.
// Buckets refill at limit per window with a burst of limit.
type MemoryLimiter struct {
	buckets sync.Map
	every   rate.Limit
	burst   int
	window  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		every:  rate.Every(window / time.Duration(limit)),
		burst:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	b := l.get(key)
	b.lastSeen.Store(l.now().UnixNano())
	return b.lim.AllowN(l.now(), 1), nil
}

func (l *MemoryLimiter) get(key string) *bucket {
	if v, ok := l.buckets.Load(key); ok {
		return v.(*bucket)
	}
	b := &bucket{lim: rate.NewLimiter(l.every, l.burst)}
	actual, _ := l.buckets.LoadOrStore(key, b)
	return actual.(*bucket)
}

// Sweep drops buckets that have not been used for a full window.
// Such a bucket has refilled completely, so dropping it loses no state.
func (l *MemoryLimiter) Sweep() int {
	cutoff := l.now().Add(-l.window).UnixNano()
	removed := 0
	l.buckets.Range(func(k, v any) bool {
		if v.(*bucket).lastSeen.Load() <= cutoff {
			l.buckets.Delete(k)
			removed++
		}
		return true
	})
	return removed
}

// Len returns the number of tracked keys.
func (l *MemoryLimiter) Len() int {
	n := 0
	l.buckets.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Run sweeps idle buckets every interval until ctx is done.
func (l *MemoryLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Sweep(); n > 0 {
				zerolog.Ctx(ctx).Debug().Int("evicted", n).Msg("rate limit buckets swept")
			}
		}
	}
}
