package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lichwu/iapush/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds the shared Redis client and verifies connectivity
// once at startup. A dead cache at boot is a deploy problem worth failing
// fast on; transient failures later degrade to token refreshes instead.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.DialTimeoutSeconds > 0 {
		opts.DialTimeout = time.Duration(cfg.Redis.DialTimeoutSeconds) * time.Second
	}
	if cfg.Redis.ReadTimeoutSeconds > 0 {
		opts.ReadTimeout = time.Duration(cfg.Redis.ReadTimeoutSeconds) * time.Second
	}
	if cfg.Redis.WriteTimeoutSeconds > 0 {
		opts.WriteTimeout = time.Duration(cfg.Redis.WriteTimeoutSeconds) * time.Second
	}
	if cfg.Redis.PoolSize > 0 {
		opts.PoolSize = cfg.Redis.PoolSize
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return rdb, nil
}
