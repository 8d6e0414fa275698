package service

import (
	"context"
	"time"
)

// AccessTokenRecord is the cached form of a refreshed access token. The cache
// entry is the only source of truth for validity: once it expires out of the
// cache the token is gone, there is no in-process copy.
type AccessTokenRecord struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Scope       string    `json:"scope,omitempty"`
	TokenType   string    `json:"token_type,omitempty"`
}

// Valid reports whether the record holds a token usable at the given instant.
func (r *AccessTokenRecord) Valid(now time.Time) bool {
	if r == nil || r.AccessToken == "" {
		return false
	}
	return r.ExpiresAt.After(now)
}

// TokenCache stores access token records keyed by OAuth client ID.
//
// Implementations must return (nil, nil) on a clean miss. Read errors are
// treated as misses by the manager, never as fatal.
type TokenCache interface {
	GetTokenRecord(ctx context.Context, clientID string) (*AccessTokenRecord, error)
	SetTokenRecord(ctx context.Context, clientID string, record *AccessTokenRecord, ttl time.Duration) error
}
