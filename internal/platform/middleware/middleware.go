// Package middleware provides the request-scoped plumbing applied to every
// route: request IDs for log correlation and a single "now" per request so
// every timestamp stamped while serving it agrees.
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"crmsimples/pkg/requestcontext"
)

// RequestID assigns a request ID (honoring an inbound X-Request-ID header)
// and echoes it back on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTime captures the current time at the start of the request and
// stores it in the context for consistent time references throughout.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
