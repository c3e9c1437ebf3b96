package main

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// idleClientTTL is how long a client's limiter is kept after its last request
	idleClientTTL = 10 * time.Minute
	// sweepInterval bounds how often Allow walks the client map for idle entries
	sweepInterval = time.Minute
)

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter hands out one token bucket per client IP
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientEntry
	limit   rate.Limit
	burst   int
	now     func() time.Time

	lastSweep time.Time
}

func newClientLimiter(perSecond float64, burst int) *clientLimiter {
	if burst < 1 {
		burst = max(1, int(perSecond))
	}
	return &clientLimiter{
		clients: make(map[string]*clientEntry),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		now:     time.Now,

		lastSweep: time.Now(),
	}
}

// Allow reports whether the client may make a request now
func (l *clientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.clients[client]
	if !ok {
		entry = &clientEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = entry
	}
	entry.lastSeen = now

	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}

	return entry.limiter.AllowN(now, 1)
}

// sweep drops limiters idle for longer than idleClientTTL. Caller holds mu.
func (l *clientLimiter) sweep(now time.Time) {
	for ip, e := range l.clients {
		if now.Sub(e.lastSeen) > idleClientTTL {
			delete(l.clients, ip)
		}
	}
	l.lastSweep = now
}

// rateLimitMiddleware rejects requests over the per-client limit with 429
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(getClientIP(r, s.config.TrustProxyHeaders)) {
			w.Header().Set("Retry-After", "1")
			s.respondError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
