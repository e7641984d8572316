package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/wellport/wellport-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns every request an id, honoring one supplied by the caller,
// and tags log entries with it.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, requestID)
			ctx := logg.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
