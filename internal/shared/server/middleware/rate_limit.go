package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit is a process-wide token bucket. It refills at ratePerSecond up
// to burst and answers 429 once the bucket is empty.
func RateLimit(ratePerSecond float64, burst int) gin.HandlerFunc {
	b := &bucket{
		tokens: float64(burst),
		max:    float64(burst),
		rate:   ratePerSecond,
		last:   time.Now(),
	}
	return func(c *gin.Context) {
		if !b.take() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

type bucket struct {
	mu     sync.Mutex
	tokens float64
	max    float64
	rate   float64
	last   time.Time
}

func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.last).Seconds() * b.rate
	if b.tokens > b.max {
		b.tokens = b.max
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
