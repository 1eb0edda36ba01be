package httpmiddleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenBucket is a small in-memory per-IP rate limiter. One process, one
// kiosk: no need for a shared backend.
type TokenBucket struct {
	capacity int
	perMin   int

	mu      sync.Mutex
	buckets map[string]*bucket
	swept   time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewTokenBucket creates a limiter refilling perMinute tokens with burst
// capacity equal to perMinute.
func NewTokenBucket(perMinute int) *TokenBucket {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &TokenBucket{
		capacity: perMinute,
		perMin:   perMinute,
		buckets:  make(map[string]*bucket),
		swept:    time.Now(),
	}
}

// GinMiddleware returns a handler enforcing the per-IP limit.
func (l *TokenBucket) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.allow(ip, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (l *TokenBucket) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.swept) > 10*time.Minute {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &bucket{tokens: float64(l.capacity) - 1, last: now}
		return true
	}

	b.tokens += now.Sub(b.last).Minutes() * float64(l.perMin)
	if b.tokens > float64(l.capacity) {
		b.tokens = float64(l.capacity)
	}
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops buckets idle long enough to be full again. Caller holds mu.
func (l *TokenBucket) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.last) > 10*time.Minute {
			delete(l.buckets, key)
		}
	}
	l.swept = now
}
