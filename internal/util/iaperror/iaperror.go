// Package iaperror defines the error taxonomy for the Google integration
// layer: configuration failures, transport failures, and token lifecycle
// failures. Downstream non-2xx responses are not modeled as errors; the raw
// status and body are passed back to callers.
package iaperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ConfigError reports a malformed or missing required field in the OAuth
// client descriptor or the bootstrap token response. Fatal at construction.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Msg)
}

// NewConfigError builds a ConfigError for the given field.
func NewConfigError(field, msg string) *ConfigError {
	return &ConfigError{Field: field, Msg: msg}
}

// TransportError wraps a connection, DNS, or timeout failure against a
// specific URL. It is never swallowed into a default value.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError wraps err with the (already redacted) target URL.
func NewTransportError(url string, err error) *TransportError {
	return &TransportError{URL: url, Err: err}
}

// TokenReason classifies token refresh failures.
type TokenReason string

const (
	// ReasonInvalidResponse: the refresh completed at the transport level but
	// the body lacked access_token or was not parseable.
	ReasonInvalidResponse TokenReason = "invalid_response"
	// ReasonRefreshFailed: the refresh call itself failed in transit.
	ReasonRefreshFailed TokenReason = "refresh_failed"
)

// TokenError reports a failed access token acquisition with enough context
// for the caller to diagnose it without re-running the exchange.
type TokenError struct {
	Reason     TokenReason
	URL        string
	StatusCode int
	Err        error
}

func (e *TokenError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "token %s", e.Reason)
	if e.URL != "" {
		fmt.Fprintf(&b, " url=%s", e.URL)
	}
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " status=%d", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TokenError) Unwrap() error { return e.Err }

// NewTokenError builds a TokenError; url must already be redacted.
func NewTokenError(reason TokenReason, url string, status int, err error) *TokenError {
	return &TokenError{Reason: reason, URL: url, StatusCode: status, Err: err}
}

// IsTokenError reports whether err is a TokenError with the given reason.
func IsTokenError(err error, reason TokenReason) bool {
	var te *TokenError
	if !errors.As(err, &te) {
		return false
	}
	return te.Reason == reason
}

// ExtractUpstreamErrorCodeAndMessage pulls a structured code/message pair out
// of common Google error layouts ({"error":{"code":...,"message":...}} or the
// flat variant). Non-JSON bodies yield the truncated body as the message.
func ExtractUpstreamErrorCodeAndMessage(body []byte) (string, string) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", ""
	}
	if !gjson.Valid(trimmed) {
		return "", truncateMessage(trimmed, 256)
	}

	code := firstNonEmpty(
		gjson.Get(trimmed, "error.code").String(),
		gjson.Get(trimmed, "error.status").String(),
		gjson.Get(trimmed, "code").String(),
	)
	message := firstNonEmpty(
		gjson.Get(trimmed, "error.message").String(),
		gjson.Get(trimmed, "message").String(),
		gjson.Get(trimmed, "error_description").String(),
	)
	return strings.TrimSpace(code), truncateMessage(strings.TrimSpace(message), 512)
}

// TruncateBody truncates body text for logging/inspection.
func TruncateBody(body []byte, max int) string {
	if max <= 0 {
		max = 512
	}
	raw := strings.TrimSpace(string(body))
	if len(raw) <= max {
		return raw
	}
	return raw[:max] + "...(truncated)"
}

func truncateMessage(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
