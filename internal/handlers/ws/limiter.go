package ws

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter applies a per-player token bucket to socket commands so one
// misbehaving client cannot flood the document store.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// NewLimiter creates a limiter allowing perSecond sustained commands per
// player with the given burst.
func NewLimiter(perSecond float64, burst int) *Limiter {
	return &Limiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(perSecond),
		burst:   burst,
	}
}

// Allow reports whether the player may issue another command right now.
func (l *Limiter) Allow(playerID string) bool {
	l.mu.Lock()
	bucket, ok := l.buckets[playerID]
	if !ok {
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.buckets[playerID] = bucket
	}
	l.mu.Unlock()

	return bucket.Allow()
}

// Forget drops a player's bucket, typically on disconnect.
func (l *Limiter) Forget(playerID string) {
	l.mu.Lock()
	delete(l.buckets, playerID)
	l.mu.Unlock()
}
