package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type LimiterConfig struct {
	RPS     float64       // steady refill rate
	Burst   int           // bucket capacity
	IdleTTL time.Duration // idle keys are dropped after this
}

type keyLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per key (IP, userId, ...) in memory.
type RateLimiter struct {
	conf    LimiterConfig
	mu      sync.Mutex
	buckets map[string]*keyLimiter
}

// NewRateLimiter also starts a background sweep that evicts idle buckets.
func NewRateLimiter(conf LimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		conf:    conf,
		buckets: make(map[string]*keyLimiter),
	}

	go func() {
		interval := conf.IdleTTL / 2
		if interval <= 0 {
			interval = time.Minute
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			rl.mu.Lock()
			for k, v := range rl.buckets {
				if now.Sub(v.lastSeen) > rl.conf.IdleTTL {
					delete(rl.buckets, k)
				}
			}
			rl.mu.Unlock()
		}
	}()

	return rl
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = now
		return b.limiter
	}

	lim := rate.NewLimiter(rate.Limit(rl.conf.RPS), rl.conf.Burst)
	rl.buckets[key] = &keyLimiter{limiter: lim, lastSeen: now}
	return lim
}

// KeySelector decides what a request is limited by (IP, userId, ...).
type KeySelector func(c *gin.Context) string

func (rl *RateLimiter) Middleware(selectKey KeySelector) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := selectKey(c)
		lim := rl.getLimiter(key)

		if !lim.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
