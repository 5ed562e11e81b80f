// middleware/rate_limiter.go
package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/cashflowx/cashflowx_backend/models"
)

type bucketLimit struct {
	limit rate.Limit
	burst int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP and route class. Clients
// that exhaust a bucket are blocked for blockDuration. Buckets unused for
// idleTimeout are dropped by the hourly sweep.
type RateLimiter struct {
	visitors       map[string]*visitor
	blockedUntil   map[string]time.Time
	mu             sync.Mutex
	defaultLimit   bucketLimit
	endpointLimits map[string]bucketLimit
	blockDuration  time.Duration
	idleTimeout    time.Duration
	now            func() time.Time
	done           chan struct{}
	closeOnce      sync.Once
}

func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		visitors:     make(map[string]*visitor),
		blockedUntil: make(map[string]time.Time),
		defaultLimit: bucketLimit{
			limit: rate.Every(100 * time.Millisecond), // 10 requests per second
			burst: 20,
		},
		endpointLimits: map[string]bucketLimit{
			// Credential endpoints get strict limits against brute force.
			"/api/auth/sign-in":         {limit: rate.Every(2 * time.Second), burst: 5},
			"/api/auth/sign-up":         {limit: rate.Every(2 * time.Second), burst: 5},
			"/api/auth/forgot-password": {limit: rate.Every(10 * time.Second), burst: 3},
		},
		blockDuration: 5 * time.Minute,
		idleTimeout:   time.Hour,
		now:           time.Now,
		done:          make(chan struct{}),
	}
	go limiter.cleanup()
	return limiter
}

// Close stops the background cleanup.
func (r *RateLimiter) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

// sweep drops expired blocks and buckets idle for longer than idleTimeout.
func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, until := range r.blockedUntil {
		if now.After(until) {
			delete(r.blockedUntil, key)
			delete(r.visitors, key)
		}
	}
	for key, v := range r.visitors {
		if _, blocked := r.blockedUntil[key]; blocked {
			continue
		}
		if now.Sub(v.lastSeen) > r.idleTimeout {
			delete(r.visitors, key)
		}
	}
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Uploaded files are not rate limited
			if strings.HasPrefix(c.Request().URL.Path, "/uploads/") {
				return next(c)
			}

			bucket, limits := "default", r.defaultLimit
			if l, ok := r.endpointLimits[c.Path()]; ok {
				bucket, limits = c.Path(), l
			}
			key := c.RealIP() + "|" + bucket

			if !r.allow(key, limits) {
				return c.JSON(http.StatusTooManyRequests, models.Response{
					Success: false,
					Message: "Too many requests, please try again later",
				})
			}
			return next(c)
		}
	}
}

func (r *RateLimiter) allow(key string, limits bucketLimit) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if until, blocked := r.blockedUntil[key]; blocked {
		if now.Before(until) {
			return false
		}
		// Block has expired; start over with a fresh bucket
		delete(r.blockedUntil, key)
		delete(r.visitors, key)
	}

	v, ok := r.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(limits.limit, limits.burst)}
		r.visitors[key] = v
	}
	v.lastSeen = now
	if !v.limiter.AllowN(now, 1) {
		r.blockedUntil[key] = now.Add(r.blockDuration)
		return false
	}
	return true
}
