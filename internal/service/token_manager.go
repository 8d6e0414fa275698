package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lichwu/iapush/internal/config"
	"github.com/lichwu/iapush/internal/pkg/logger"
	"github.com/lichwu/iapush/internal/util/iaperror"
	"github.com/lichwu/iapush/internal/util/logredact"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TokenManager hands out a currently-usable access token for one OAuth client
// identity. It reuses the cached token when it can, refreshes when it must,
// and coalesces concurrent refreshes for the same client into a single call
// to the token endpoint. Reusing a refresh token concurrently can get it
// revoked by the provider, so the single-flight discipline is a correctness
// requirement, not an optimization.
type TokenManager struct {
	creds     ClientCredentials
	cache     TokenCache
	oauth     GoogleOAuthClient
	ttlMargin time.Duration
	sf        singleflight.Group
	now       func() time.Time
}

// NewTokenManager builds a TokenManager owning the given credentials.
func NewTokenManager(cfg *config.Config, creds ClientCredentials, cache TokenCache, oauth GoogleOAuthClient) *TokenManager {
	return &TokenManager{
		creds:     creds,
		cache:     cache,
		oauth:     oauth,
		ttlMargin: cfg.Google.TokenTTLMargin(),
		now:       time.Now,
	}
}

// GetValidToken returns an access token valid at the time of the call.
//
// With forceRefresh false the cached record short-circuits the refresh; a
// cache miss (or unreadable cache) triggers one. With forceRefresh true the
// refresh path is always taken and the cache entry is overwritten on success;
// callers use it after a downstream 401 rejected the cached token.
func (m *TokenManager) GetValidToken(ctx context.Context, forceRefresh bool) (string, error) {
	clientID := m.creds.ClientID

	if !forceRefresh {
		if token, ok := m.cachedToken(ctx, clientID); ok {
			return token, nil
		}
	}

	v, err, _ := m.sf.Do(clientID, func() (any, error) {
		if !forceRefresh {
			// A caller that held the flight may have refreshed while we
			// were waiting for the slot.
			if token, ok := m.cachedToken(ctx, clientID); ok {
				return token, nil
			}
		}
		return m.refresh(ctx, clientID)
	})
	if err != nil {
		return "", err
	}

	token, ok := v.(string)
	if !ok || token == "" {
		return "", iaperror.NewTokenError(iaperror.ReasonInvalidResponse, "", 0, fmt.Errorf("empty token from refresh"))
	}
	return token, nil
}

func (m *TokenManager) cachedToken(ctx context.Context, clientID string) (string, bool) {
	record, err := m.cache.GetTokenRecord(ctx, clientID)
	if err != nil {
		// Cache trouble degrades to a miss; the refresh path still works.
		logger.FromContext(ctx).Debug("token cache read failed, treating as miss",
			zap.String("component", "token.manager"),
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		return "", false
	}
	if !record.Valid(m.now()) {
		return "", false
	}
	return record.AccessToken, true
}

// tokenEndpointResponse is the subset of the OAuth token response we consume.
type tokenEndpointResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
	TokenType   string `json:"token_type"`
}

func (m *TokenManager) refresh(ctx context.Context, clientID string) (string, error) {
	result, err := m.oauth.ExchangeRefreshToken(ctx, m.creds)
	if err != nil {
		return "", iaperror.NewTokenError(iaperror.ReasonRefreshFailed, "", 0, err)
	}

	var parsed tokenEndpointResponse
	if err := json.Unmarshal(result.Body, &parsed); err != nil {
		logger.FromContext(ctx).Warn("token endpoint returned unparseable body",
			zap.String("component", "token.manager"),
			zap.String("client_id", clientID),
			zap.Int("status", result.StatusCode),
			zap.String("body", logredact.RedactJSON(result.Body)),
		)
		return "", iaperror.NewTokenError(iaperror.ReasonInvalidResponse, "", result.StatusCode,
			fmt.Errorf("unparseable token response: %w", err))
	}
	if parsed.AccessToken == "" {
		code, msg := iaperror.ExtractUpstreamErrorCodeAndMessage(result.Body)
		detail := "token response missing access_token"
		if code != "" || msg != "" {
			detail = fmt.Sprintf("token endpoint rejected refresh: code=%s message=%s", code, msg)
		}
		return "", iaperror.NewTokenError(iaperror.ReasonInvalidResponse, "", result.StatusCode,
			errors.New(detail))
	}

	now := m.now()
	lifetime := time.Duration(parsed.ExpiresIn) * time.Second
	record := &AccessTokenRecord{
		AccessToken: parsed.AccessToken,
		ExpiresAt:   now.Add(lifetime),
		Scope:       parsed.Scope,
		TokenType:   parsed.TokenType,
	}

	ttl := lifetime - m.ttlMargin
	if ttl <= 0 {
		ttl = lifetime
	}
	if err := m.cache.SetTokenRecord(ctx, clientID, record, ttl); err != nil {
		// The token itself is good; the next caller just pays for another
		// refresh.
		logger.FromContext(ctx).Warn("token cache write failed",
			zap.String("component", "token.manager"),
			zap.String("client_id", clientID),
			zap.Error(err),
		)
	}

	logger.FromContext(ctx).Debug("access token refreshed",
		zap.String("component", "token.manager"),
		zap.String("client_id", clientID),
		zap.Duration("lifetime", lifetime),
	)
	return parsed.AccessToken, nil
}
