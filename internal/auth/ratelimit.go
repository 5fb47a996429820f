package auth

import (
	"sync"
	"time"
)

// loginLimiter tracks failed logins per email within a sliding window.
// All retries remain user-initiated; the limiter only gates how fast they
// can be attempted.
type loginLimiter struct {
	maxFailures int
	window      time.Duration

	mu       sync.Mutex
	failures map[string][]time.Time
}

func newLoginLimiter(maxFailures int, window time.Duration) *loginLimiter {
	return &loginLimiter{
		maxFailures: maxFailures,
		window:      window,
		failures:    make(map[string][]time.Time),
	}
}

func (l *loginLimiter) blocked(email string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	recent := l.prune(email, now)
	return len(recent) >= l.maxFailures
}

func (l *loginLimiter) recordFailure(email string, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[email] = append(l.prune(email, now), now)
}

func (l *loginLimiter) reset(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, email)
}

// prune drops failures older than the window; caller holds the lock.
func (l *loginLimiter) prune(email string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	var recent []time.Time
	for _, ts := range l.failures[email] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	if recent == nil {
		delete(l.failures, email)
	} else {
		l.failures[email] = recent
	}
	return recent
}
