package transport

import (
	"context"
	"net/http"
	"strings"
)

// SessionHeader carries the MCP session id on streamable HTTP requests.
const SessionHeader = "Mcp-Session-Id"

type sessionKey struct{}

// WithSessionID returns a copy of ctx carrying sessionID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionIDFromContext returns the session ID from context, if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionKey{}).(string)
	return sessionID, ok
}

// SessionMiddleware copies a non-blank Mcp-Session-Id header into the request context.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionID := strings.TrimSpace(r.Header.Get(SessionHeader)); sessionID != "" {
			r = r.WithContext(WithSessionID(r.Context(), sessionID))
		}
		next.ServeHTTP(w, r)
	})
}
