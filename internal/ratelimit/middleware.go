package ratelimit

import (
	"net"
	"net/http"
	"strings"

	"github.com/elskow/gatekeeper/internal/api"
)

// Middleware rejects requests from clients that exhausted their attempt
// budget. It runs before validation so over-limit clients never reach the
// service layer.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(ClientKey(r)) {
			api.WriteError(w, http.StatusTooManyRequests,
				"Too many authentication attempts, please try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientKey identifies the client by the first X-Forwarded-For hop when a
// proxy supplies one, otherwise by the remote address.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
