package middleware

import (
	"net/http"

	"placementhub/internal/contextutils"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the correlation id to and from clients.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a correlation id, honoring one sent by
// the client, and attaches a request-scoped logger carrying it.
func RequestID(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				if generated, err := uuid.NewV4(); err == nil {
					id = generated.String()
				}
			}

			ctx := contextutils.WithRequestID(r.Context(), id)
			ctx = contextutils.WithLogger(ctx, logger.With(zap.String("request_id", id)))

			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
