package middleware

import (
	"net"
	"net/http"
	"sync"

	"go-appointment-scheduling/pkg/response"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[string]*rate.Limiter),
	}
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.buckets[ip]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.buckets[ip] = lim
	}
	return lim
}

func (l *RateLimiter) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter(clientIP(r)).Allow() {
			response.TooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
