//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/lichwu/iapush/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func brokenRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
	})
	t.Cleanup(func() {
		_ = rdb.Close()
	})
	return rdb
}

func TestGoogleTokenCache_GetTokenRecord_RedisError(t *testing.T) {
	cache := NewGoogleTokenCache(brokenRedis(t))
	_, err := cache.GetTokenRecord(context.Background(), "client-1")
	require.Error(t, err)
}

func TestGoogleTokenCache_SetTokenRecord_RedisError(t *testing.T) {
	cache := NewGoogleTokenCache(brokenRedis(t))
	err := cache.SetTokenRecord(context.Background(), "client-1", &service.AccessTokenRecord{
		AccessToken: "ya29.x",
		ExpiresAt:   time.Now().Add(time.Hour),
	}, time.Hour)
	require.Error(t, err)
}

func TestGoogleTokenCache_SetTokenRecord_NilRecord(t *testing.T) {
	cache := NewGoogleTokenCache(brokenRedis(t))
	err := cache.SetTokenRecord(context.Background(), "client-1", nil, time.Hour)
	require.Error(t, err)
}

func TestTokenKeyIsPrefixed(t *testing.T) {
	require.Equal(t, "google:oauth:token:client-1", tokenKey("client-1"))
}
