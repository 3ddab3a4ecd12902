// internal/middleware/rate_limit.go
package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/inventra/inventra-backend/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors()

	return rl
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		rl.mtx.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 30*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mtx.Unlock()
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getVisitor(c.ClientIP())

		if !limiter.Allow() {
			utils.TooManyRequestsResponse(c, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GeneralRateLimit covers the whole API: 10 requests per second per IP.
func GeneralRateLimit() gin.HandlerFunc {
	return NewRateLimiter(rate.Every(time.Second/10), 10).Middleware()
}

// LoginRateLimit allows attempts per IP within a sliding window, refilling
// one attempt per window/limit. Defaults match 5 attempts per 15 minutes.
func LoginRateLimit(limit, windowMinutes int) gin.HandlerFunc {
	if limit <= 0 {
		limit = 5
	}
	if windowMinutes <= 0 {
		windowMinutes = 15
	}
	interval := time.Duration(windowMinutes) * time.Minute / time.Duration(limit)
	return NewRateLimiter(rate.Every(interval), limit).Middleware()
}

// SignupRateLimit allows 5 signups per hour per IP.
func SignupRateLimit() gin.HandlerFunc {
	return NewRateLimiter(rate.Every(12*time.Minute), 5).Middleware()
}

// AIRateLimit keeps LLM calls to roughly 10 per minute per IP.
func AIRateLimit() gin.HandlerFunc {
	return NewRateLimiter(rate.Every(6*time.Second), 10).Middleware()
}
