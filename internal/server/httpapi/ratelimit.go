package httpapi

import (
	"sync"
	"time"
)

// fixedWindowLimiter admits at most max requests per key in each window.
// A zero max or window disables limiting.
type fixedWindowLimiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	clients   map[string]*windowCount
	lastSweep time.Time
}

type windowCount struct {
	start time.Time
	count int
}

func newFixedWindowLimiter(window time.Duration, max int) *fixedWindowLimiter {
	return &fixedWindowLimiter{
		window:  window,
		max:     max,
		clients: make(map[string]*windowCount),
	}
}

// Allow counts one request for key at now. When the budget is spent it
// returns false and the time left until the window resets.
func (l *fixedWindowLimiter) Allow(key string, now time.Time) (bool, time.Duration) {
	if l.max <= 0 || l.window <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	c, ok := l.clients[key]
	if !ok || now.Sub(c.start) >= l.window {
		l.clients[key] = &windowCount{start: now, count: 1}
		return true, 0
	}
	if c.count >= l.max {
		return false, c.start.Add(l.window).Sub(now)
	}
	c.count++
	return true, 0
}

// sweep drops expired windows at most once per window.
func (l *fixedWindowLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for k, c := range l.clients {
		if now.Sub(c.start) >= l.window {
			delete(l.clients, k)
		}
	}
	l.lastSweep = now
}
