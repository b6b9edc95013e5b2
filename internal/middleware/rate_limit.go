package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/incidentline/authcore/internal/errors"
	"github.com/incidentline/authcore/pkg/logger"
	"github.com/incidentline/authcore/pkg/redis"
	"go.uber.org/zap"
)

// RateLimiter throttles credential-guessing surfaces per client IP with a
// fixed window. Counters live in redis so the window is shared across
// instances; when redis is disabled they fall back to process-local state.
type RateLimiter struct {
	client *redis.Client
	prefix string

	mu     sync.Mutex
	local  map[string]*localWindow
}

type localWindow struct {
	count   int64
	resetAt time.Time
}

func NewRateLimiter(client *redis.Client, prefix string) *RateLimiter {
	return &RateLimiter{
		client: client,
		prefix: prefix,
		local:  make(map[string]*localWindow),
	}
}

// Limit returns middleware allowing max hits per window for each client IP
// on this route.
func (rl *RateLimiter) Limit(route string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s:%s", rl.prefix, route, c.ClientIP())

		count, err := rl.hit(c, key, window)
		if err != nil {
			// Fail open: broken throttling must not block logins.
			logger.GetLogger().Warn("Rate limit check failed, allowing request",
				zap.String("route", route),
				zap.Error(err),
			)
			c.Next()
			return
		}

		remaining := int64(max) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", max))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if count > int64(max) {
			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("route", route),
				zap.String("client_ip", c.ClientIP()),
				zap.Int64("count", count),
				zap.Int("max", max),
			)
			abortWithError(c, apperrors.ErrRateLimited)
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) hit(c *gin.Context, key string, window time.Duration) (int64, error) {
	if rl.client.IsEnabled() {
		return rl.client.Hit(c.Request.Context(), key, window)
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.local[key]
	if !ok || now.After(w.resetAt) {
		w = &localWindow{resetAt: now.Add(window)}
		rl.local[key] = w
	}
	w.count++
	return w.count, nil
}
