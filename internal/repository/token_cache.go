package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lichwu/iapush/internal/service"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "google:oauth:token:"

func tokenKey(clientID string) string {
	return tokenKeyPrefix + clientID
}

type googleTokenCache struct {
	rdb *redis.Client
}

// NewGoogleTokenCache stores access token records in Redis. The record TTL
// doubles as the expiry signal: once the key is gone the token is treated as
// expired, whatever its embedded expires_at says.
func NewGoogleTokenCache(rdb *redis.Client) service.TokenCache {
	return &googleTokenCache{rdb: rdb}
}

func (c *googleTokenCache) GetTokenRecord(ctx context.Context, clientID string) (*service.AccessTokenRecord, error) {
	raw, err := c.rdb.Get(ctx, tokenKey(clientID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get token record: %w", err)
	}

	var record service.AccessTokenRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		// A corrupt record reads as a miss; the next refresh overwrites it.
		return nil, nil
	}
	return &record, nil
}

func (c *googleTokenCache) SetTokenRecord(ctx context.Context, clientID string, record *service.AccessTokenRecord, ttl time.Duration) error {
	if record == nil {
		return errors.New("nil token record")
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal token record: %w", err)
	}
	if err := c.rdb.Set(ctx, tokenKey(clientID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("set token record: %w", err)
	}
	return nil
}
