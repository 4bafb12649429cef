package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/checkmatehq/checkmate/pkg/response"
)

const (
	visitorTTL    = 5 * time.Minute
	pruneInterval = time.Minute
)

// visitor is one client's token bucket plus the last time it was used, so
// idle buckets can be pruned.
type visitor struct {
	bucket *rate.Limiter
	seen   time.Time
}

// RateLimiter hands out one token bucket per client IP. Stale entries are
// pruned opportunistically during acquisition, so there is no background
// goroutine to manage.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rps       rate.Limit
	burst     int
	lastPrune time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		rps:       rate.Limit(rps),
		burst:     burst,
		lastPrune: time.Now(),
	}
}

// allow reports whether the client identified by ip may proceed now.
func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastPrune) > pruneInterval {
		for key, v := range rl.visitors {
			if now.Sub(v.seen) > visitorTTL {
				delete(rl.visitors, key)
			}
		}
		rl.lastPrune = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{bucket: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.seen = now
	return v.bucket.Allow()
}

// Middleware rejects requests over the per-IP budget with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{
				Code:    http.StatusTooManyRequests,
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}

// RateLimit builds a limiter and returns its middleware in one step, for
// route tables that never need the limiter handle.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	return NewRateLimiter(rps, burst).Middleware()
}
