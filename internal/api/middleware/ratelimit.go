package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter *rate.Limiter
	last    time.Time
}

type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*limiterEntry
	rps      float64
	burst    int
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	le, ok := l.visitors[ip]
	if !ok {
		le = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.visitors[ip] = le
	}
	le.last = time.Now()
	return le.limiter
}

func (l *ipLimiter) gc() {
	for range time.Tick(5 * time.Minute) {
		l.mu.Lock()
		for k, v := range l.visitors {
			if time.Since(v.last) > 10*time.Minute {
				delete(l.visitors, k)
			}
		}
		l.mu.Unlock()
	}
}

func getIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit applies a per-IP token bucket limiter.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	l := &ipLimiter{visitors: map[string]*limiterEntry{}, rps: rps, burst: burst}
	go l.gc()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.get(getIP(r)).Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
