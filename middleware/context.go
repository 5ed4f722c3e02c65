package middleware

import (
	"context"
	"net/http"

	"github.com/upb/dashboard-api/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"

	// PrincipalKey is the context key for the authenticated principal
	PrincipalKey contextKey = "principal"
)

// GetRequestIDFromContext retrieves the request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// RequestIDFromRequest is GetRequestIDFromContext for an *http.Request
func RequestIDFromRequest(r *http.Request) string {
	return GetRequestIDFromContext(r.Context())
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// PrincipalFromContext returns the principal admitted by the authorization gate, or nil
func PrincipalFromContext(ctx context.Context) *models.Principal {
	if p, ok := ctx.Value(PrincipalKey).(*models.Principal); ok {
		return p
	}
	return nil
}

// WithPrincipal adds the authenticated principal to the context
func WithPrincipal(ctx context.Context, principal *models.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}
