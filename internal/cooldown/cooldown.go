// Package cooldown throttles command execution per actor.
package cooldown

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/footprint-tools/verb/internal/dispatchers"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per actor name.
type Limiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*bucket
	exempt  map[string]bool
	now     func() time.Time
}

// New allows perSecond executions per actor with bursts of up to burst.
// A burst below 1 is raised to 1.
func New(perSecond float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		buckets: make(map[string]*bucket),
		exempt:  make(map[string]bool),
		now:     time.Now,
	}
}

// Exempt lets the named actors bypass the limiter.
func (l *Limiter) Exempt(actors ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range actors {
		l.exempt[a] = true
	}
}

// Allow takes a token from actor's bucket.
func (l *Limiter) Allow(actor string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.exempt[actor] {
		return true
	}

	now := l.now()
	b, ok := l.buckets[actor]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[actor] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Sweep forgets actors idle for longer than idle and returns how many were dropped.
func (l *Limiter) Sweep(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	n := 0
	for actor, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, actor)
			n++
		}
	}
	return n
}

// Hook cancels executions of actors that ran out of tokens.
func (l *Limiter) Hook() dispatchers.ExecuteHook {
	return func(ctx *dispatchers.Context, c *dispatchers.Cancellation) {
		if c.Cancelled() {
			return
		}
		if !l.Allow(ctx.ActorName()) {
			c.Cancel(fmt.Sprintf("%s is on cooldown", ctx.ActorName()))
		}
	}
}

// Install registers Hook on hooks.
func (l *Limiter) Install(hooks *dispatchers.Hooks) {
	hooks.OnExecute(l.Hook())
}
