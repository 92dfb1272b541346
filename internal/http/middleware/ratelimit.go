package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// Limiter is a fixed-window counter; used per-IP on auth endpoints and
// per-(job, applicant) on apply.
type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// MemoryLimiter is the single-process fallback used when Redis is not
// configured.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count int
	until time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{windows: make(map[string]*window)}
}

func (l *MemoryLimiter) Allow(key string, limit int, windowSize time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.After(w.until) {
		l.windows[key] = &window{count: 1, until: now.Add(windowSize)}
		l.prune(now)
		return true
	}
	if w.count >= limit {
		return false
	}
	w.count++
	return true
}

// prune drops expired windows so the map does not grow without bound. Called
// with the mutex held.
func (l *MemoryLimiter) prune(now time.Time) {
	if len(l.windows) < 4096 {
		return
	}
	for key, w := range l.windows {
		if now.After(w.until) {
			delete(l.windows, key)
		}
	}
}

func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
