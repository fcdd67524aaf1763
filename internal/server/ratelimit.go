package server

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	apperrors "github.com/a-thamaraiselvan/Spin-wheel/internal/errors"
	"github.com/a-thamaraiselvan/Spin-wheel/internal/metrics"
)

const (
	// Registration happens from phones on the venue wifi, often behind the
	// same NAT, so the per-IP budget is generous.
	registrationsPerMinute = 10.0
	registrationBurst      = 5
)

// registrationRateLimiter limits the rate of registrations per IP.
// Uses token bucket algorithm via golang.org/x/time/rate.
type registrationRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rateLimiterEntry
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRegistrationRateLimiter(perMinute float64, burst int) *registrationRateLimiter {
	return &registrationRateLimiter{
		limiters:  make(map[string]*rateLimiterEntry),
		rate:      rate.Limit(perMinute / 60.0),
		burst:     burst,
		cleanupAt: time.Now().Add(5 * time.Minute),
	}
}

// Allow checks if a registration from the given IP should be allowed.
func (l *registrationRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Periodic cleanup of inactive limiters (every 5 minutes)
	if time.Now().After(l.cleanupAt) {
		l.cleanup()
		l.cleanupAt = time.Now().Add(5 * time.Minute)
	}

	entry, exists := l.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{
			limiter:  rate.NewLimiter(l.rate, l.burst),
			lastSeen: time.Now(),
		}
		l.limiters[ip] = entry
	}

	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// cleanup removes limiters that haven't been used in 10 minutes.
// Must be called with mu held.
func (l *registrationRateLimiter) cleanup() {
	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

func (s *Server) registrationThrottle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.registerRate.Allow(c.RealIP()) {
			metrics.RegistrationsThrottledTotal.Inc()
			return apperrors.TooManyRequestsError("too many registrations, try again shortly")
		}
		return next(c)
	}
}
