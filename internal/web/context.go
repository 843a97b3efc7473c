package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/storelinks/internal/core"
)

// operationContext is the request context with the client IP set for core
// operation logs. TrustedRealIP normally sets it; this covers routers built
// without that middleware.
func operationContext(r *http.Request) context.Context {
	ctx := r.Context()
	if core.ClientIPFromContext(ctx) != "" {
		return ctx
	}
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return core.ContextWithClientIP(ctx, ip)
}
