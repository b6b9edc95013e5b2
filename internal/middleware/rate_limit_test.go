package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/incidentline/authcore/pkg/redis"
)

func limitedEngine(limiter *RateLimiter, max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/login", limiter.Limit("login", max, window), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func hitOnce(engine *gin.Engine) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitRedisBacked(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	limiter := NewRateLimiter(client, "test")
	engine := limitedEngine(limiter, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if code := hitOnce(engine); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
	if code := hitOnce(engine); code != http.StatusTooManyRequests {
		t.Errorf("over-limit status = %d, want 429", code)
	}

	// A new window resets the counter.
	mr.FastForward(2 * time.Minute)
	if code := hitOnce(engine); code != http.StatusOK {
		t.Errorf("post-window status = %d, want 200", code)
	}
}

func TestRateLimitInProcessFallback(t *testing.T) {
	limiter := NewRateLimiter(&redis.Client{}, "test")
	engine := limitedEngine(limiter, 2, time.Minute)

	for i := 0; i < 2; i++ {
		if code := hitOnce(engine); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
	if code := hitOnce(engine); code != http.StatusTooManyRequests {
		t.Errorf("over-limit status = %d, want 429", code)
	}
}

func TestRateLimitFailsOpenOnRedisError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	mr.Close()

	limiter := NewRateLimiter(client, "test")
	engine := limitedEngine(limiter, 1, time.Minute)

	// Throttling must not take logins down with it.
	for i := 0; i < 3; i++ {
		if code := hitOnce(engine); code != http.StatusOK {
			t.Errorf("request %d with broken redis: status = %d, want 200", i+1, code)
		}
	}
}
