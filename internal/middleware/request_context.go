package middleware

import (
	"net/http"
	"strings"

	"github.com/eduquip/catalog-backend/internal/logging"
	"github.com/google/uuid"
)

// RequestContext installs a request-scoped logger carrying a request id and
// the client IP. It runs before the enforcement middleware, so deny verdicts
// are logged with the same correlation id as everything else.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()

		logger := logging.With(
			"request_id", requestID,
			"client_ip", getClientIP(r),
		)
		ctx := logging.ContextWithLogger(r.Context(), logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// attempt to get client IP, later can be used for rate limiting
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
