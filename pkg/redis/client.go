package redis

import (
	"github.com/redis/go-redis/v9"

	"taskboard/pkg/config"
)

// NewClient constructs a Redis client from the config.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
