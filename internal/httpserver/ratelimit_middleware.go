package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CounterStore counts hits per key within a fixed window.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter is the Redis-backed CounterStore used in production.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// RateLimit rejects clients exceeding limit requests per window, keyed by
// client IP and route. A nil store disables limiting; store errors fail
// open so a Redis outage cannot take the auth endpoints down with it.
func RateLimit(store CounterStore, limit int64, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil {
			c.Next()
			return
		}

		key := "rl:" + c.FullPath() + ":" + c.ClientIP()
		n, err := store.Incr(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn("Rate limit store unavailable", zap.Error(err))
			c.Next()
			return
		}

		if n > limit {
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
