package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"gin-booking-engine/internal/handler/httperr"
	"gin-booking-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepSize     = 1024
	limiterSweepInterval = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	limiters  map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
		limiters: make(map[string]*clientLimiter),
		now:      time.Now,
	}
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	// Idle buckets are dropped at most once per interval.
	if len(l.limiters) >= limiterSweepSize && now.Sub(l.lastSweep) >= limiterSweepInterval {
		l.lastSweep = now
		for k, cl := range l.limiters {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(l.limiters, k)
			}
		}
	}

	cl, ok := l.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// Middleware rejects with 429 once a client exhausts its bucket. A
// non-positive rate disables limiting.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.limit <= 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if !l.allow(ip) {
			slog.Warn("rate limit exceeded", "client_ip", ip, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				httperr.NewResponse(http.StatusTooManyRequests, "Rate limit exceeded, try again later"))
			return
		}
		c.Next()
	}
}
