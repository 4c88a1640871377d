package core

import (
	"context"
	"time"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const requestIDKey contextKey = "request-id"

// WithRequestID returns a new context with the request ID attached.
// The client sends it as X-Request-ID instead of generating one.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// RequestInfo describes an outgoing File API call.
type RequestInfo struct {
	Operation string
	Method    string
	Endpoint  string
	RequestID string
}

// ResponseInfo describes a finished File API call.
// Err is the transport error, if any; envelope failures are reported through Code.
type ResponseInfo struct {
	RequestInfo
	StatusCode int
	Code       ResponseCode
	Duration   time.Duration
	Err        error
}

// Hooks observes File API calls. Implementations must be safe for concurrent use.
type Hooks interface {
	OnRequestStart(ctx context.Context, info RequestInfo) context.Context
	OnRequestEnd(ctx context.Context, info ResponseInfo)
}
