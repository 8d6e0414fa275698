package service

import (
	"context"
	"time"
)

// Per-call timeout budgets. Acknowledge gets a longer budget because it is
// the authoritative purchase-settled signal, and a premature timeout makes
// callers retry with duplicate-charge risk.
const (
	TokenRefreshTimeout    = 5 * time.Second
	DefaultCallTimeout     = 5 * time.Second
	AcknowledgeCallTimeout = 10 * time.Second
)

// APICall describes one authenticated HTTP call to a Google endpoint.
type APICall struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	// Timeout bounds the whole call; zero means DefaultCallTimeout.
	Timeout time.Duration
}

// APIResult is the raw outcome of a downstream call. Non-2xx statuses are
// data, not errors: the caller decides what a 410 from Play Billing means.
type APIResult struct {
	StatusCode int
	Body       []byte
}

// Success reports whether the status code is in the 2xx range.
func (r *APIResult) Success() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// GoogleAPIInvoker executes a single APICall. It never retries; transport
// failures come back as *iaperror.TransportError.
type GoogleAPIInvoker interface {
	Invoke(ctx context.Context, call APICall) (*APIResult, error)
}

// GoogleOAuthClient exchanges a long-lived refresh token for a short-lived
// access token at the OAuth token endpoint. The raw status and body are
// returned without judgment; the TokenManager decides what counts as valid.
type GoogleOAuthClient interface {
	ExchangeRefreshToken(ctx context.Context, creds ClientCredentials) (*APIResult, error)
}
