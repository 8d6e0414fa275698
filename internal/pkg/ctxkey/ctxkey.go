// Package ctxkey defines type-safe keys for context.Value.
package ctxkey

// Key avoids the built-in string type for context keys (staticcheck SA1029).
type Key string

const (
	// RequestID is the server-generated or client-propagated request ID,
	// used to correlate access logs with downstream Google call logs.
	RequestID Key = "ctx_request_id"
)
